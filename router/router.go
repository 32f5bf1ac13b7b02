package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub000/controllers"
	"github.com/Ferdismit7/qmstool-sub000/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	reportCtrl := controllers.NewReportController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	progressCtrl := controllers.NewObjectiveProgressController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter on login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Dashboard events websocket (token via query param)
	r.GET("/events/ws", controllers.EventsHandler)

	// ----------------------------------------------------------------
	//                      SCOPED API ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		// Same CRUD surface for every module
		for _, res := range controllers.Resources {
			crud := controllers.NewCrudController(db, res)
			grp := api.Group("/" + res.Path)
			grp.GET("", crud.List)
			grp.POST("", crud.Create)
			grp.GET("/:id", crud.Get)
			grp.PUT("/:id", crud.Update)
			grp.DELETE("/:id", crud.Delete)
			grp.GET("/:id/history", crud.History)
		}

		// Monthly progress entries under quality objectives
		api.GET("/quality-objectives/:id/progress", progressCtrl.ListProgress)
		api.POST("/quality-objectives/:id/progress", progressCtrl.AddProgress)

		// Management report
		api.GET("/management-report", reportCtrl.GetReport)
		api.GET("/management-report/pdf", reportCtrl.GetReportPDF)

		// Notifications
		api.GET("/notifications", notificationCtrl.GetNotifications)
		api.PUT("/notifications/:id/read", notificationCtrl.MarkRead)

		// Admin-only user management
		admin := api.Group("/admin")
		admin.Use(middlewares.RequireAdmin())
		{
			admin.POST("/business-areas/grant", userCtrl.GrantBusinessArea)
		}
	}

	return r
}
