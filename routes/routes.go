package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/planroomhq/planroom-server/controllers"
	"github.com/planroomhq/planroom-server/middleware"
	"github.com/planroomhq/planroom-server/store"
)

func SetupRoutes(r *gin.Engine, st store.Store) {
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api/v1")
	{
		api.POST("/accounts", middleware.RateLimitAuth(), controllers.Signup)

		auth := api.Group("/auth")
		{
			auth.POST("/authentication", middleware.RateLimitAuth(), controllers.Authenticate)
			auth.POST("/google", middleware.RateLimitAuth(), controllers.GoogleLogin)
		}

		protected := api.Group("/")
		protected.Use(middleware.AuthJWT(st))
		{
			protected.GET("/accounts/me", controllers.Me)

			rooms := protected.Group("/rooms")
			{
				rooms.GET("", controllers.ListRooms)
				rooms.POST("", controllers.CreateRoom)
				rooms.GET("/:room_id", controllers.GetRoom)
				rooms.DELETE("/:room_id", controllers.DeleteRoom)
				rooms.DELETE("/:room_id/exit", controllers.ExitRoom)
				rooms.POST("/:room_id/join", controllers.JoinRoom)
				rooms.GET("/:room_id/participants", controllers.GetRoomParticipants)
				rooms.GET("/:room_id/plans", controllers.ListPlans)
				rooms.POST("/:room_id/plans", controllers.CreatePlan)
				rooms.POST("/:room_id/export", controllers.CreateExport)
			}

			plans := protected.Group("/plans")
			{
				plans.GET("/:plan_id/waypoints", controllers.ListWaypoints)
				plans.POST("/:plan_id/waypoints", controllers.AddWaypoint)
			}

			protected.GET("/exports/:job_id", controllers.GetExport)
			protected.POST("/uploads", controllers.UploadFile)
		}
	}
}
