package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/IT2357/Hotel-Management-sub000/entity"
	"github.com/IT2357/Hotel-Management-sub000/repository"

	"gorm.io/gorm"
)

// Gateway outcome codes
const (
	GatewaySuccess   = "success"
	GatewayFailed    = "failed"
	GatewayCancelled = "cancelled"
)

// PaymentNotification is the gateway's native webhook schema. Signature is
// the hex HMAC-SHA256 of the canonical field set under the shared secret.
type PaymentNotification struct {
	OrderRef  string `json:"orderRef" binding:"required"`
	EventID   string `json:"eventId" binding:"required"`
	Status    string `json:"status" binding:"required"`
	Amount    int64  `json:"amount"`
	Signature string `json:"signature" binding:"required"`
}

// WebhookResult tells the controller what happened; the gateway gets 200
// either way so its retry loop stops.
type WebhookResult struct {
	Order   *entity.Order `json:"order,omitempty"`
	Applied bool          `json:"applied"`
	Message string        `json:"message,omitempty"`
}

type WebhookService struct {
	DB     *gorm.DB
	Orders *OrderService
	Repo   *repository.OrderRepository
	Secret string
}

func NewWebhookService(db *gorm.DB, orders *OrderService, repo *repository.OrderRepository, secret string) *WebhookService {
	return &WebhookService{DB: db, Orders: orders, Repo: repo, Secret: secret}
}

// CanonicalPayload is the exact byte sequence both sides sign.
func CanonicalPayload(n *PaymentNotification) string {
	return fmt.Sprintf("%s|%s|%s|%d", n.OrderRef, n.EventID, n.Status, n.Amount)
}

// SignNotification computes the signature a trusted gateway would send.
// Shared with the tests and any outbound tooling.
func SignNotification(n *PaymentNotification, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(CanonicalPayload(n)))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *WebhookService) verify(n *PaymentNotification) bool {
	want := SignNotification(n, s.Secret)
	// constant-time compare, the signature is attacker-controlled input
	return hmac.Equal([]byte(want), []byte(n.Signature))
}

// Handle processes one gateway notification, exactly once in effect no
// matter how many times the gateway retries delivery. The idempotency pivot
// is the order's current paymentStatus: a notification whose outcome is
// already reflected is acknowledged without touching state.
func (s *WebhookService) Handle(n *PaymentNotification) (*WebhookResult, error) {
	if !s.verify(n) {
		return nil, ErrInvalidSignature
	}

	o, err := s.Repo.GetByPaymentRef(n.OrderRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	switch n.Status {
	case GatewaySuccess:
		if o.PaymentStatus == entity.PaymentPaid {
			return &WebhookResult{Order: o, Applied: false, Message: "payment already recorded"}, nil
		}
		out, err := s.Orders.Confirm(o.ID, n.OrderRef, n.EventID, n.Amount)
		if err != nil {
			if errors.Is(err, ErrConflict) {
				// a concurrent delivery won the race; same outcome either way
				cur, gerr := s.Repo.Get(o.ID)
				if gerr == nil && cur.PaymentStatus == entity.PaymentPaid {
					return &WebhookResult{Order: cur, Applied: false, Message: "payment already recorded"}, nil
				}
			}
			return nil, err
		}
		return &WebhookResult{Order: out, Applied: true}, nil

	case GatewayFailed, GatewayCancelled:
		target := entity.PaymentFailed
		if n.Status == GatewayCancelled {
			target = entity.PaymentCancelled
		}
		if o.PaymentStatus == target {
			return &WebhookResult{Order: o, Applied: false, Message: "outcome already recorded"}, nil
		}

		affected, err := s.Repo.UpdatePaymentStatusGuard(s.DB, o.ID, entity.PaymentUnpaid, target,
			map[string]any{"transaction_ref": n.EventID})
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			// payment status moved since we read it; treat as replay
			cur, gerr := s.Repo.Get(o.ID)
			if gerr != nil {
				return nil, gerr
			}
			return &WebhookResult{Order: cur, Applied: false, Message: "outcome already recorded"}, nil
		}

		out := o
		if o.OrderStatusID == s.Orders.Status.Pending {
			out, err = s.Orders.CancelSystem(o.ID, "payment "+n.Status)
			if err != nil && !errors.Is(err, ErrConflict) && !errors.Is(err, ErrInvalidState) {
				return nil, err
			}
		}
		if out == nil {
			out, _ = s.Repo.Get(o.ID)
		}
		return &WebhookResult{Order: out, Applied: true}, nil

	default:
		return nil, ErrInvalidStatus
	}
}
