package services

import (
	"github.com/IT2357/Hotel-Management-sub000/entity"
)

// base preparation minutes per task type
var taskBaseMinutes = map[string]float64{
	entity.TaskPrep:         5,
	entity.TaskCook:         15,
	entity.TaskPlate:        3,
	entity.TaskDelivery:     10,
	entity.TaskQualityCheck: 2,
}

const (
	perExtraItemMinutes = 2.0
	// room-service tasks jump the queue, so their wall-clock estimate shrinks
	roomServiceFactor = 0.8
)

// EstimateMinutes is the deterministic completion-time estimate for a task.
// Unknown task types estimate to zero; Enqueue validates the type first.
func EstimateMinutes(taskType string, itemCount int, roomService bool) float64 {
	minutes, ok := taskBaseMinutes[taskType]
	if !ok {
		return 0
	}
	if itemCount > 1 {
		minutes += float64(itemCount-1) * perExtraItemMinutes
	}
	if roomService {
		minutes *= roomServiceFactor
	}
	return minutes
}
