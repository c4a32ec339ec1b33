package entity

import (
	"time"

	"gorm.io/gorm"
)

// Task types
const (
	TaskPrep         = "prep"
	TaskCook         = "cook"
	TaskPlate        = "plate"
	TaskDelivery     = "delivery"
	TaskQualityCheck = "quality_check"
)

// Task statuses
const (
	TaskQueued     = "queued"
	TaskAssigned   = "assigned"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
	TaskFailed     = "failed"
	TaskCancelled  = "cancelled"
)

// Priorities. Numeric so the pending board can be ordered in SQL.
const (
	PriorityLow    = 1
	PriorityNormal = 5
	PriorityHigh   = 10
	PriorityUrgent = 20
)

type KitchenTask struct {
	gorm.Model
	OrderID uint   `json:"orderId"`
	Type    string `json:"type"`
	Status  string `json:"status"`

	Priority    int  `json:"priority"`
	RoomService bool `json:"roomService"`

	AssigneeID  *uint      `json:"assigneeId,omitempty"`
	AssignedAt  *time.Time `json:"assignedAt,omitempty"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	EstimatedMinutes float64   `json:"estimatedMinutes"`
	EstimatedAt      time.Time `json:"estimatedAt"`

	Note string `json:"note,omitempty"`

	Events []TaskEvent `gorm:"foreignKey:TaskID" json:"-"`
}

func ValidTaskType(t string) bool {
	switch t {
	case TaskPrep, TaskCook, TaskPlate, TaskDelivery, TaskQualityCheck:
		return true
	}
	return false
}

// TerminalTaskStatus reports whether a task status is final. Terminal tasks
// are immutable except for their history log.
func TerminalTaskStatus(s string) bool {
	switch s {
	case TaskCompleted, TaskFailed, TaskCancelled:
		return true
	}
	return false
}

// PriorityName maps a numeric priority to its display name.
func PriorityName(p int) string {
	switch {
	case p >= PriorityUrgent:
		return "urgent"
	case p >= PriorityHigh:
		return "high"
	case p >= PriorityNormal:
		return "normal"
	default:
		return "low"
	}
}
