package controllers

import (
	"errors"

	"github.com/IT2357/Hotel-Management-sub000/entity"
	"github.com/IT2357/Hotel-Management-sub000/pkg/resp"
	"github.com/IT2357/Hotel-Management-sub000/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StaffOrderController is the staff/manager side of the order lifecycle:
// confirm payment manually, advance kitchen status, assign tasks.
type StaffOrderController struct {
	DB     *gorm.DB
	Orders *services.OrderService
	Tasks  *services.TaskService
}

func NewStaffOrderController(db *gorm.DB, orders *services.OrderService, tasks *services.TaskService) *StaffOrderController {
	return &StaffOrderController{DB: db, Orders: orders, Tasks: tasks}
}

type confirmReq struct {
	PaymentID     string `json:"paymentId" binding:"required"`
	TransactionID string `json:"transactionId" binding:"required"`
	Amount        int64  `json:"amount" binding:"required"`
}

// POST /orders/:id/confirm (manager only)
func (sc *StaffOrderController) Confirm(c *gin.Context) {
	var req confirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := sc.Orders.Confirm(orderIDParam(c), req.PaymentID, req.TransactionID, req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, out)
}

type updateStatusReq struct {
	KitchenStatus string `json:"kitchenStatus" binding:"required"`
}

// PUT /orders/:id/status (staff only)
func (sc *StaffOrderController) UpdateStatus(c *gin.Context) {
	staffID := currentStaffID(c)

	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := sc.Orders.AdvanceKitchenStatus(orderIDParam(c), req.KitchenStatus, staffID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, out)
}

type assignReq struct {
	StaffID  uint   `json:"staffId" binding:"required"`
	TaskType string `json:"taskType" binding:"required"`
}

// PUT /orders/:id/assign (manager only) — hand the order's queued task of
// the given type to a staff member.
func (sc *StaffOrderController) Assign(c *gin.Context) {
	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	var staff entity.User
	if err := sc.DB.Where("id = ? AND role IN ?", req.StaffID,
		[]string{entity.RoleStaff, entity.RoleManager}).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.BadRequest(c, "invalid staff id")
			return
		}
		resp.ServerError(c, err)
		return
	}

	out, err := sc.Tasks.AssignToStaff(orderIDParam(c), req.TaskType, req.StaffID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, out)
}
