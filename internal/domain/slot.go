package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BusinessHours параметры сетки слотов на день
type BusinessHours struct {
	Open                 types.TimeString
	Close                types.TimeString
	IntervalMinutes      int
	CleanupBufferMinutes int // системный буфер уборки после каждого бронирования
}

// Interval полуинтервал [Start, End) в минутах от полуночи
type Interval struct {
	Start int
	End   int
}

// Overlaps проверяет пересечение открытых интервалов: касание границами не считается
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Alternative предложенное администратором альтернативное время
type Alternative struct {
	Date      time.Time
	StartTime types.TimeString
}

type alternativeJSON struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}

// MarshalJSON кодирует дату как YYYY-MM-DD
func (a Alternative) MarshalJSON() ([]byte, error) {
	return json.Marshal(alternativeJSON{
		Date:      a.Date.Format(DateFormat),
		StartTime: a.StartTime.String(),
	})
}

// UnmarshalJSON разбирает {"date":"YYYY-MM-DD","startTime":"HH:MM"}
func (a *Alternative) UnmarshalJSON(data []byte) error {
	var raw alternativeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	date, err := time.Parse(DateFormat, raw.Date)
	if err != nil {
		return fmt.Errorf("alternative date: %w", err)
	}
	start, err := types.NewTimeStringFromString(raw.StartTime)
	if err != nil {
		return fmt.Errorf("alternative startTime: %w", err)
	}
	a.Date = date
	a.StartTime = start
	return nil
}

// Alternatives список альтернатив, хранится в JSONB-колонке
type Alternatives []Alternative

// Value реализует driver.Valuer
func (a Alternatives) Value() (driver.Value, error) {
	if len(a) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal([]Alternative(a))
}

// Scan реализует sql.Scanner
func (a *Alternatives) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("alternatives: unsupported type %T", src)
	}
	var list []Alternative
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("alternatives: %w", err)
	}
	*a = list
	return nil
}
