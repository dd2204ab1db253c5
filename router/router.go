package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/helpdesk-app/controllers"
	"github.com/yeremiapane/helpdesk-app/middlewares"
	"github.com/yeremiapane/helpdesk-app/models"
	"github.com/yeremiapane/helpdesk-app/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, mailer *services.Mailer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// 50 requests per second per IP across the whole API
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	notifier := services.NewNotifier(db)

	userCtrl := controllers.NewUserController(db)
	groupCtrl := controllers.NewGroupController(db)
	ticketCtrl := controllers.NewTicketController(db, notifier, mailer)
	commentCtrl := controllers.NewCommentController(db, notifier)
	attachmentCtrl := controllers.NewAttachmentController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	dashboardCtrl := controllers.NewDashboardController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())

	api.POST("/change-password", userCtrl.ChangePassword)

	// USERS (admin/leader)
	staffOnly := api.Group("/")
	staffOnly.Use(middlewares.RequireRoles(models.RoleAdmin, models.RoleLeader))
	{
		staffOnly.GET("/users", userCtrl.GetAllUsers)
		staffOnly.POST("/users", userCtrl.CreateUser)
		staffOnly.PUT("/users/:id", userCtrl.UpdateUser)
		staffOnly.DELETE("/users/:id", userCtrl.DeleteUser)

		// GROUPS (admin/leader)
		staffOnly.GET("/groups", groupCtrl.GetAllGroups)
		staffOnly.POST("/groups", groupCtrl.CreateGroup)
		staffOnly.PUT("/groups/:id", groupCtrl.UpdateGroup)
		staffOnly.DELETE("/groups/:id", groupCtrl.DeleteGroup)
	}

	// TICKETS (visibility scoped per role inside the controller)
	api.GET("/tickets", ticketCtrl.GetAllTickets)
	api.POST("/tickets", ticketCtrl.CreateTicket)
	api.GET("/tickets/:id", ticketCtrl.GetTicketByID)
	api.PUT("/tickets/:id", ticketCtrl.UpdateTicket)
	api.DELETE("/tickets/:id", ticketCtrl.DeleteTicket)

	// COMMENTS
	api.GET("/tickets/:id/comments", commentCtrl.GetComments)
	api.POST("/tickets/:id/comments", commentCtrl.CreateComment)

	// ATTACHMENTS
	api.GET("/tickets/:id/attachments", attachmentCtrl.GetTicketAttachments)
	api.GET("/comments/:id/attachments", attachmentCtrl.GetCommentAttachments)
	api.GET("/uploads/:id", attachmentCtrl.Download)

	// NOTIFICATIONS (own rows only)
	api.GET("/notifications", notificationCtrl.GetMyNotifications)
	api.POST("/notifications/read", notificationCtrl.MarkAllRead)
	api.DELETE("/notifications/:id", notificationCtrl.DeleteNotification)
	api.DELETE("/notifications", notificationCtrl.DeleteAllNotifications)

	// DASHBOARD (admin/staff)
	dashboard := api.Group("/dashboard")
	dashboard.Use(middlewares.RequireRoles(models.RoleAdmin, models.RoleStaff))
	{
		dashboard.GET("/stats", dashboardCtrl.GetStats)
	}

	// WebSocket event stream; the token travels in the query string.
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("", controllers.EventsHandler)
	}

	return r
}
