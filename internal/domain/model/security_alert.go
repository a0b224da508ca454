package model

import (
	"time"
)

// Alert severity levels, lowest to highest.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// SecurityAlert is a security finding surfaced on a user's dashboard.
// Alerts may be unowned (UserID nil) until triaged.
type SecurityAlert struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Title       string    `json:"title" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Severity    string    `json:"severity" gorm:"size:20;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Resolved    bool      `json:"resolved" gorm:"default:false"`
	UserID      *uint     `json:"user_id,omitempty" gorm:"index"`
}
