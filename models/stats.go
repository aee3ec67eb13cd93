package models

import (
	"time"

	"gorm.io/gorm"
)

// CycleStats is one row per completed stats cycle, kept in the optional
// archive database for trend inspection. Per-member state never lands
// here; the flat-file ledger owns that.
type CycleStats struct {
	gorm.Model
	Date            time.Time `gorm:"index"`
	Scope           string    `gorm:"index"` // "daily" or "weekly"
	ActiveUsers     int
	InactiveUsers   int
	RemovedUsers    int
	MessagesScanned int
	ChannelsScanned int
}
