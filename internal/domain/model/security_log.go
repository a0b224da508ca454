package model

import (
	"time"
)

// SecurityLog is an append-only audit record. Rows are never updated or
// deleted once written.
type SecurityLog struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	EventType   string    `json:"event_type" gorm:"size:50;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	IPAddress   string    `json:"ip_address,omitempty" gorm:"size:50"`
	Timestamp   time.Time `json:"timestamp" gorm:"autoCreateTime;index"`
	UserID      *uint     `json:"user_id,omitempty" gorm:"index"`
}
