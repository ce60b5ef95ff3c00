package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BlockKind тип административной блокировки
type BlockKind string

const (
	BlockClosed BlockKind = "closed"
	BlockBreak  BlockKind = "break"
	BlockOther  BlockKind = "other"
)

// IsValid returns true for a known block kind
func (k BlockKind) IsValid() bool {
	return k == BlockClosed || k == BlockBreak || k == BlockOther
}

// AdminBlock закрытое администратором время. Буфер уборки к нему не применяется.
type AdminBlock struct {
	ID        int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Kind      BlockKind
	Label     *string
	CreatedAt time.Time
}
