package entity

import (
	"gorm.io/gorm"
)

// TaskEvent is the append-only status history of a kitchen task.
type TaskEvent struct {
	gorm.Model
	TaskID     uint   `json:"taskId"`
	FromStatus string `json:"fromStatus"`
	ToStatus   string `json:"toStatus"`
	ActorID    *uint  `json:"actorId,omitempty"` // nil = system
	Note       string `json:"note,omitempty"`
}
