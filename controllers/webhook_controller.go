package controllers

import (
	"errors"
	"net/http"

	"github.com/IT2357/Hotel-Management-sub000/pkg/resp"
	"github.com/IT2357/Hotel-Management-sub000/services"

	"github.com/gin-gonic/gin"
)

type WebhookController struct {
	Webhooks *services.WebhookService
}

func NewWebhookController(webhooks *services.WebhookService) *WebhookController {
	return &WebhookController{Webhooks: webhooks}
}

// POST /webhooks/payment — gateway only. Once the signature checks out the
// gateway always gets 200, even for business-level no-ops, so its retry loop
// does not storm us. 401 is reserved for signature failure.
func (wc *WebhookController) HandlePayment(c *gin.Context) {
	var n services.PaymentNotification
	if err := c.ShouldBindJSON(&n); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	result, err := wc.Webhooks.Handle(&n)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSignature) {
			resp.Unauthorized(c, err.Error())
			return
		}
		// signature was valid; acknowledge so the gateway stops retrying,
		// report the business-level problem in the body
		c.JSON(http.StatusOK, gin.H{"ok": false, "applied": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "applied": result.Applied, "message": result.Message})
}
