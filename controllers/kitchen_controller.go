package controllers

import (
	"strconv"

	"github.com/IT2357/Hotel-Management-sub000/entity"
	"github.com/IT2357/Hotel-Management-sub000/pkg/resp"
	"github.com/IT2357/Hotel-Management-sub000/services"
	"github.com/IT2357/Hotel-Management-sub000/utils"

	"github.com/gin-gonic/gin"
)

// KitchenController is the staff task board: pending list, claim, advance.
type KitchenController struct {
	Tasks *services.TaskService
}

func NewKitchenController(tasks *services.TaskService) *KitchenController {
	return &KitchenController{Tasks: tasks}
}

// currentStaffID is just the authenticated user; staff routes are gated by
// role middleware before this runs.
func currentStaffID(c *gin.Context) uint {
	return utils.CurrentUserID(c)
}

func taskIDParam(c *gin.Context) uint {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id)
}

type taskView struct {
	entity.KitchenTask
	PriorityName string `json:"priorityName"`
}

// GET /kitchen/tasks — priority-ordered pending board
func (kc *KitchenController) ListPending(c *gin.Context) {
	tasks, err := kc.Tasks.ListPending()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	out := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskView{KitchenTask: t, PriorityName: entity.PriorityName(t.Priority)})
	}
	resp.OK(c, gin.H{"items": out})
}

// POST /kitchen/tasks/:id/claim
func (kc *KitchenController) Claim(c *gin.Context) {
	out, err := kc.Tasks.Claim(taskIDParam(c), currentStaffID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, out)
}

type advanceTaskReq struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// PUT /kitchen/tasks/:id/status
func (kc *KitchenController) Advance(c *gin.Context) {
	var req advanceTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := kc.Tasks.Advance(taskIDParam(c), req.Status, currentStaffID(c), req.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, out)
}
