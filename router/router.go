package router

import (
	"io/fs"
	"net/http"

	"donation/api"
	"donation/auth"
	"donation/config"
	_ "donation/docs"
	"donation/middleware"
	"donation/service"
	"donation/store"
	"donation/web"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由，存储由调用方注入
func SetupRouter(cfg *config.Config, s store.Store) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// 嵌入的静态文件 - 公开页面与后台管理
	staticFS, _ := fs.Sub(web.StaticFS, ".")
	r.GET("/", func(c *gin.Context) {
		content, err := fs.ReadFile(staticFS, "index.html")
		if err != nil {
			c.String(http.StatusInternalServerError, "加载页面失败")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", content)
	})

	gate := auth.NewGate(s, auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpireTime))
	stats := service.NewStatsService(s)
	notifier := service.NewEmailService(&cfg.Email, cfg.Ledger.Name)

	authHandler := api.NewAuthHandler(gate)
	statsHandler := api.NewStatsHandler(stats)
	categoryHandler := api.NewCategoryHandler(s)
	projectHandler := api.NewProjectHandler(s)
	incomeHandler := api.NewIncomeHandler(s, notifier)
	expenseHandler := api.NewExpenseHandler(s)
	exportHandler := api.NewExportHandler(stats, s, s, cfg.Ledger.Name, cfg.Ledger.Currency)

	apiGroup := r.Group("/api")
	{
		// 公开接口（无需登录）
		apiGroup.GET("/stats", statsHandler.Get)
		apiGroup.POST("/login",
			middleware.LoginRateLimit(cfg.RateLimit.LoginMaxAttempts, cfg.RateLimit.LoginWindow()),
			authHandler.Login)
		apiGroup.GET("/categories", categoryHandler.List)
		apiGroup.GET("/projects", projectHandler.List)
		apiGroup.GET("/incomes", incomeHandler.List)
		apiGroup.GET("/expenses", expenseHandler.List)
		apiGroup.GET("/export/excel", exportHandler.ExportExcel)

		// 需要 JWT 认证的管理接口
		admin := apiGroup.Group("")
		admin.Use(middleware.JWTAuth(gate))
		{
			admin.POST("/categories", categoryHandler.Create)
			admin.PUT("/categories/:id", categoryHandler.Update)
			admin.POST("/projects", projectHandler.Create)
			admin.PUT("/projects/:id", projectHandler.Update)
			admin.POST("/incomes", incomeHandler.Create)
			admin.PUT("/incomes/:id", incomeHandler.Update)
			admin.POST("/expenses", expenseHandler.Create)
			admin.PUT("/expenses/:id", expenseHandler.Update)
		}
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		if err := s.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"error":  config.SafeErrorMessage(err, "database unavailable"),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
