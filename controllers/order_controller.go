package controllers

import (
	"strconv"

	"github.com/IT2357/Hotel-Management-sub000/pkg/resp"
	"github.com/IT2357/Hotel-Management-sub000/services"
	"github.com/IT2357/Hotel-Management-sub000/utils"

	"github.com/gin-gonic/gin"
)

// OrderController is the guest-facing surface: place, inspect, modify,
// cancel and review own orders.
type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

func orderIDParam(c *gin.Context) uint {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id)
}

// POST /orders
func (oc *OrderController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := oc.Orders.Create(uid, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.Created(c, out)
}

// GET /orders/:id (owner only)
func (oc *OrderController) Detail(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	out, err := oc.Orders.DetailForUser(uid, orderIDParam(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /profile/orders
func (oc *OrderController) ListForMe(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := oc.Orders.ListForUser(uid, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

type modifyOrderReq struct {
	Items []services.OrderItemIn `json:"items" binding:"required,min=1"`
	Notes string                 `json:"notes"`
}

// PUT /orders/:id/modify (owner only)
func (oc *OrderController) Modify(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req modifyOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := oc.Orders.Modify(orderIDParam(c), req.Items, uid)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, out)
}

type cancelOrderReq struct {
	Reason string `json:"reason" binding:"required"`
}

// DELETE /orders/:id/cancel (owner only)
func (oc *OrderController) Cancel(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req cancelOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := oc.Orders.Cancel(orderIDParam(c), req.Reason, uid)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{
		"refundAmount":  out.RefundAmount,
		"refundPercent": out.RefundPercent,
		"refundStatus":  out.RefundBasis,
		"paymentStatus": out.PaymentStatus,
	})
}

type reviewReq struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// POST /orders/:id/review (owner only, once, after delivery)
func (oc *OrderController) Review(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req reviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := oc.Orders.AttachReview(orderIDParam(c), req.Rating, req.Comment, uid)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{
		"id":            out.ID,
		"reviewRating":  out.ReviewRating,
		"reviewComment": out.ReviewComment,
		"reviewedAt":    out.ReviewedAt,
	})
}
