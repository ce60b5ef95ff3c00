package domain

import "time"

// Customer represents a salon customer
type Customer struct {
	ID          int64
	Name        string
	NameReading *string // フリガナ
	Email       string
	Phone       string
	Notes       *string
	CreatedAt   time.Time
}
