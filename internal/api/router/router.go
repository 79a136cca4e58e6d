package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/omanjaya/websmansa-sub000/config"
	"github.com/omanjaya/websmansa-sub000/internal/api/handler"
	"github.com/omanjaya/websmansa-sub000/internal/api/middleware"
	"github.com/omanjaya/websmansa-sub000/pkg/jwt"
	"github.com/omanjaya/websmansa-sub000/pkg/redis"
)

// Setup builds the gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// authentication (public, throttled)
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// authenticated routes
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// class periods; mutations are admin-only
			schedules := authorized.Group("/schedules")
			{
				schedules.GET("", h.Schedule.List)
				schedules.GET("/:id", h.Schedule.Get)
				schedules.POST("", middleware.RoleAuth("admin"), h.Schedule.Create)
				schedules.PUT("/:id", middleware.RoleAuth("admin"), h.Schedule.Update)
				schedules.PATCH("/:id/active", middleware.RoleAuth("admin"), h.Schedule.SetActive)
				schedules.DELETE("/:id", middleware.RoleAuth("admin"), h.Schedule.Delete)
			}

			// grouped weekly views
			timetables := authorized.Group("/timetables")
			{
				timetables.GET("/class/:id", h.Timetable.ByClass)
				timetables.GET("/teacher/:id", h.Timetable.ByTeacher)
			}

			// academic term
			authorized.GET("/terms/current", h.Schedule.CurrentTerm)

			// downloads
			export := authorized.Group("/export")
			{
				export.GET("/timetable", h.Export.ExportTimetable)
				export.GET("/timetable.ics", h.Export.ExportTimetableICS)
			}

			// master data
			classes := authorized.Group("/classes")
			{
				classes.GET("", h.Class.List)
				classes.GET("/:id", h.Class.Get)
				classes.POST("", middleware.RoleAuth("admin"), h.Class.Create)
				classes.PUT("/:id", middleware.RoleAuth("admin"), h.Class.Update)
				classes.DELETE("/:id", middleware.RoleAuth("admin"), h.Class.Delete)
			}

			subjects := authorized.Group("/subjects")
			{
				subjects.GET("", h.Subject.List)
				subjects.GET("/:id", h.Subject.Get)
				subjects.POST("", middleware.RoleAuth("admin"), h.Subject.Create)
				subjects.PUT("/:id", middleware.RoleAuth("admin"), h.Subject.Update)
				subjects.DELETE("/:id", middleware.RoleAuth("admin"), h.Subject.Delete)
			}

			teachers := authorized.Group("/teachers")
			{
				teachers.GET("", h.Teacher.List)
				teachers.GET("/:id", h.Teacher.Get)
				teachers.POST("", middleware.RoleAuth("admin"), h.Teacher.Create)
				teachers.PUT("/:id", middleware.RoleAuth("admin"), h.Teacher.Update)
				teachers.DELETE("/:id", middleware.RoleAuth("admin"), h.Teacher.Delete)
			}

			// audit trail
			authorized.GET("/activity-logs", middleware.RoleAuth("admin"), h.ActivityLog.List)
		}
	}

	return r
}
