package routes

import (
	"github.com/IT2357/Hotel-Management-sub000/configs"
	"github.com/IT2357/Hotel-Management-sub000/controllers"
	"github.com/IT2357/Hotel-Management-sub000/entity"
	"github.com/IT2357/Hotel-Management-sub000/middlewares"
	"github.com/IT2357/Hotel-Management-sub000/repository"
	"github.com/IT2357/Hotel-Management-sub000/services"
	"github.com/IT2357/Hotel-Management-sub000/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	orderRepo := repository.NewOrderRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Notification hub (injected, replaces the legacy socket singleton)
	hub := ws.NewHub()
	go hub.Run()

	// Services
	taskSvc := services.NewTaskService(db, taskRepo, hub)
	orderSvc := services.NewOrderService(db, orderRepo, taskSvc, hub, services.Pricing{
		TaxRatePercent: cfg.TaxRatePercent,
		DeliveryFee:    cfg.DeliveryFee,
		FlatDiscount:   cfg.FlatDiscount,
		Currency:       cfg.Currency,
	})
	webhookSvc := services.NewWebhookService(db, orderSvc, orderRepo, cfg.WebhookSecret)

	// Controllers
	authCtrl := controllers.NewAuthController(db, cfg)
	orderCtrl := controllers.NewOrderController(orderSvc)
	staffCtrl := controllers.NewStaffOrderController(db, orderSvc, taskSvc)
	kitchenCtrl := controllers.NewKitchenController(taskSvc)
	webhookCtrl := controllers.NewWebhookController(webhookSvc)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}

	// Payment gateway webhook (signature-verified, no JWT)
	r.POST("/webhooks/payment", webhookCtrl.HandlePayment)

	// Guest order surface
	u := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		u.POST("/orders", orderCtrl.Create)
		u.GET("/orders/:id", orderCtrl.Detail)
		u.PUT("/orders/:id/modify", orderCtrl.Modify)
		u.DELETE("/orders/:id/cancel", orderCtrl.Cancel)
		u.POST("/orders/:id/review", orderCtrl.Review)
		u.GET("/ws/notifications", hub.HandleWebSocket)
	}

	profile := r.Group("/profile", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		profile.GET("/orders", orderCtrl.ListForMe)
	}

	// Staff kitchen surface
	staff := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleStaff, entity.RoleManager))
	{
		staff.PUT("/orders/:id/status", staffCtrl.UpdateStatus)
		staff.GET("/kitchen/tasks", kitchenCtrl.ListPending)
		staff.POST("/kitchen/tasks/:id/claim", kitchenCtrl.Claim)
		staff.PUT("/kitchen/tasks/:id/status", kitchenCtrl.Advance)
	}

	// Manager-only actions
	manager := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleManager))
	{
		manager.POST("/orders/:id/confirm", staffCtrl.Confirm)
		manager.PUT("/orders/:id/assign", staffCtrl.Assign)
	}
}
