package repository

import (
	"time"

	"github.com/IT2357/Hotel-Management-sub000/entity"

	"gorm.io/gorm"
)

type TaskRepository struct {
	DB *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

func (r *TaskRepository) Create(tx *gorm.DB, t *entity.KitchenTask) error {
	return tx.Create(t).Error
}

func (r *TaskRepository) Get(taskID uint) (*entity.KitchenTask, error) {
	var t entity.KitchenTask
	if err := r.DB.First(&t, taskID).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ClaimGuard is the claim compare-and-swap: one UPDATE conditioned on the
// task still being queued. Under concurrent claims exactly one caller gets
// RowsAffected == 1; everyone else finds the WHERE clause no longer matches.
func (r *TaskRepository) ClaimGuard(tx *gorm.DB, taskID, staffID uint, now time.Time) (int64, error) {
	res := tx.Model(&entity.KitchenTask{}).
		Where("id = ? AND status = ?", taskID, entity.TaskQueued).
		Updates(map[string]any{
			"assignee_id": staffID,
			"status":      entity.TaskAssigned,
			"assigned_at": now,
		})
	return res.RowsAffected, res.Error
}

// UpdateStatusGuard mirrors the order-side guard for task transitions.
func (r *TaskRepository) UpdateStatusGuard(tx *gorm.DB, taskID uint, from, to string, sets map[string]any) (int64, error) {
	if sets == nil {
		sets = map[string]any{}
	}
	sets["status"] = to
	res := tx.Model(&entity.KitchenTask{}).
		Where("id = ? AND status = ?", taskID, from).
		Updates(sets)
	return res.RowsAffected, res.Error
}

// ListPending returns the staff board: open tasks, urgent first, room
// service breaking ties, FIFO within the same tier.
func (r *TaskRepository) ListPending() ([]entity.KitchenTask, error) {
	var tasks []entity.KitchenTask
	err := r.DB.
		Where("status IN ?", []string{entity.TaskQueued, entity.TaskAssigned, entity.TaskInProgress}).
		Order("priority DESC, room_service DESC, created_at ASC, id ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListNonTerminalForOrder(tx *gorm.DB, orderID uint) ([]entity.KitchenTask, error) {
	var tasks []entity.KitchenTask
	err := tx.
		Where("order_id = ? AND status IN ?", orderID,
			[]string{entity.TaskQueued, entity.TaskAssigned, entity.TaskInProgress}).
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) FirstQueuedByType(orderID uint, taskType string) (*entity.KitchenTask, error) {
	var t entity.KitchenTask
	err := r.DB.
		Where("order_id = ? AND type = ? AND status = ?", orderID, taskType, entity.TaskQueued).
		Order("id ASC").First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) FirstOpenByType(tx *gorm.DB, orderID uint, taskType string) (*entity.KitchenTask, error) {
	var t entity.KitchenTask
	err := tx.
		Where("order_id = ? AND type = ? AND status IN ?", orderID, taskType,
			[]string{entity.TaskQueued, entity.TaskAssigned, entity.TaskInProgress}).
		Order("id ASC").First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) AppendEvent(tx *gorm.DB, ev *entity.TaskEvent) error {
	return tx.Create(ev).Error
}

func (r *TaskRepository) GetEvents(taskID uint) ([]entity.TaskEvent, error) {
	var evs []entity.TaskEvent
	err := r.DB.Where("task_id = ?", taskID).Order("id ASC").Find(&evs).Error
	return evs, err
}
