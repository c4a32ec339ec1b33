package services

import (
	"errors"
	"time"

	"github.com/IT2357/Hotel-Management-sub000/entity"
	"github.com/IT2357/Hotel-Management-sub000/repository"

	"gorm.io/gorm"
)

type TaskService struct {
	DB       *gorm.DB
	Repo     *repository.TaskRepository
	Notifier Notifier
}

func NewTaskService(db *gorm.DB, repo *repository.TaskRepository, n Notifier) *TaskService {
	return &TaskService{DB: db, Repo: repo, Notifier: n}
}

// Enqueue creates a queued task for an order. Runs inside the caller's
// transaction so task creation commits or rolls back with the order
// transition that spawned it.
func (s *TaskService) Enqueue(tx *gorm.DB, orderID uint, taskType string, roomService bool, itemCount int) (*entity.KitchenTask, error) {
	if !entity.ValidTaskType(taskType) {
		return nil, ErrInvalidTaskType
	}

	priority := entity.PriorityNormal
	if roomService {
		priority = entity.PriorityUrgent
	}
	minutes := EstimateMinutes(taskType, itemCount, roomService)

	task := &entity.KitchenTask{
		OrderID:          orderID,
		Type:             taskType,
		Status:           entity.TaskQueued,
		Priority:         priority,
		RoomService:      roomService,
		EstimatedMinutes: minutes,
		EstimatedAt:      time.Now().Add(time.Duration(minutes * float64(time.Minute))),
	}
	if err := s.Repo.Create(tx, task); err != nil {
		return nil, err
	}
	ev := &entity.TaskEvent{TaskID: task.ID, FromStatus: "", ToStatus: entity.TaskQueued, Note: "task created"}
	if err := s.Repo.AppendEvent(tx, ev); err != nil {
		return nil, err
	}
	return task, nil
}

// Claim atomically assigns a queued task to a staff member. The assignment
// is a single conditional UPDATE keyed on status = queued; among N
// concurrent claimers exactly one wins, the rest get ErrAlreadyClaimed.
func (s *TaskService) Claim(taskID, staffID uint) (*entity.KitchenTask, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.ClaimGuard(tx, taskID, staffID, time.Now())
		if err != nil {
			return err
		}
		if affected == 0 {
			var t entity.KitchenTask
			if err := tx.First(&t, taskID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrTaskNotFound
				}
				return err
			}
			return ErrAlreadyClaimed
		}
		ev := &entity.TaskEvent{
			TaskID:     taskID,
			FromStatus: entity.TaskQueued,
			ToStatus:   entity.TaskAssigned,
			ActorID:    &staffID,
			Note:       "claimed",
		}
		return s.Repo.AppendEvent(tx, ev)
	})
	if err != nil {
		return nil, err
	}

	task, err := s.Repo.Get(taskID)
	if err != nil {
		return nil, err
	}
	notify(s.Notifier, AudienceStaff, "task.claimed", task)
	return task, nil
}

// AssignToStaff is the manager path: pick the oldest queued task of the
// given type on an order and claim it on the staff member's behalf.
func (s *TaskService) AssignToStaff(orderID uint, taskType string, staffID uint) (*entity.KitchenTask, error) {
	if !entity.ValidTaskType(taskType) {
		return nil, ErrInvalidTaskType
	}
	t, err := s.Repo.FirstQueuedByType(orderID, taskType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return s.Claim(t.ID, staffID)
}

// Advance moves a task along its lifecycle on behalf of its assignee.
// assigned → in_progress, in_progress → completed, any open state → failed
// (note required). Cancellation is system-initiated only, see
// CancelAllForOrder.
func (s *TaskService) Advance(taskID uint, newStatus string, staffID uint, note string) (*entity.KitchenTask, error) {
	t, err := s.Repo.Get(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	now := time.Now()
	sets := map[string]any{}
	switch newStatus {
	case entity.TaskInProgress:
		if t.Status != entity.TaskAssigned {
			return nil, ErrInvalidState
		}
		sets["started_at"] = now
	case entity.TaskCompleted:
		if t.Status != entity.TaskInProgress {
			return nil, ErrInvalidState
		}
		sets["completed_at"] = now
	case entity.TaskFailed:
		if entity.TerminalTaskStatus(t.Status) {
			return nil, ErrInvalidState
		}
		if note == "" {
			return nil, ErrNoteRequired
		}
		sets["note"] = note
	case entity.TaskCancelled:
		// guests and staff never cancel tasks directly
		return nil, ErrInvalidStatus
	default:
		return nil, ErrInvalidStatus
	}

	// a queued task has no assignee yet; otherwise only the holder may act
	if t.AssigneeID != nil && *t.AssigneeID != staffID {
		return nil, ErrForbidden
	}

	from := t.Status
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, taskID, from, newStatus, sets)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflict
		}
		ev := &entity.TaskEvent{
			TaskID:     taskID,
			FromStatus: from,
			ToStatus:   newStatus,
			ActorID:    &staffID,
			Note:       note,
		}
		return s.Repo.AppendEvent(tx, ev)
	})
	if err != nil {
		return nil, err
	}

	task, err := s.Repo.Get(taskID)
	if err != nil {
		return nil, err
	}
	notify(s.Notifier, AudienceStaff, "task."+newStatus, task)
	return task, nil
}

// ListPending returns the staff dashboard view, deterministically ordered:
// priority desc, room service first, FIFO within the tier.
func (s *TaskService) ListPending() ([]entity.KitchenTask, error) {
	return s.Repo.ListPending()
}

// CompleteOpenByType closes the oldest open task of the given type on an
// order, e.g. the delivery task when the order is marked delivered. No open
// task is not an error.
func (s *TaskService) CompleteOpenByType(tx *gorm.DB, orderID uint, taskType string, actorID *uint) error {
	t, err := s.Repo.FirstOpenByType(tx, orderID, taskType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	affected, err := s.Repo.UpdateStatusGuard(tx, t.ID, t.Status, entity.TaskCompleted,
		map[string]any{"completed_at": time.Now()})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrConflict
	}
	ev := &entity.TaskEvent{
		TaskID: t.ID, FromStatus: t.Status, ToStatus: entity.TaskCompleted,
		ActorID: actorID, Note: "closed on delivery",
	}
	return s.Repo.AppendEvent(tx, ev)
}

// CancelAllForOrder terminates every open task of an order. System
// initiated; runs inside the order-cancellation transaction.
func (s *TaskService) CancelAllForOrder(tx *gorm.DB, orderID uint, reason string) (int, error) {
	tasks, err := s.Repo.ListNonTerminalForOrder(tx, orderID)
	if err != nil {
		return 0, err
	}
	cancelled := 0
	for _, t := range tasks {
		affected, err := s.Repo.UpdateStatusGuard(tx, t.ID, t.Status, entity.TaskCancelled, map[string]any{"note": reason})
		if err != nil {
			return cancelled, err
		}
		if affected == 0 {
			// the task moved concurrently; it is either terminal now or will
			// be picked up by the caller's retry
			continue
		}
		ev := &entity.TaskEvent{TaskID: t.ID, FromStatus: t.Status, ToStatus: entity.TaskCancelled, Note: reason}
		if err := s.Repo.AppendEvent(tx, ev); err != nil {
			return cancelled, err
		}
		cancelled++
	}
	return cancelled, nil
}
