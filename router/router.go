package router

import (
	"io/fs"
	"net/http"
	"time"

	"relieffund/api"
	"relieffund/config"
	_ "relieffund/docs"
	"relieffund/middleware"
	"relieffund/models"
	"relieffund/web"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// 嵌入的静态文件 - 后台管理页面
	staticFS, _ := fs.Sub(web.StaticFS, ".")
	r.GET("/", func(c *gin.Context) {
		content, err := fs.ReadFile(staticFS, "index.html")
		if err != nil {
			c.String(http.StatusInternalServerError, "加载页面失败")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", content)
	})

	// 后台管理 API（管理员/总部，Cookie 认证）
	adminHandler := api.NewAdminHandler(cfg)
	passwordResetHandler := api.NewPasswordResetHandler(cfg)
	admin := r.Group("/admin")
	{
		admin.POST("/login", middleware.LoginRateLimit(5, time.Minute), adminHandler.AdminLogin)
		admin.POST("/logout", adminHandler.AdminLogout)

		// 密码重置（无需登录）
		admin.POST("/password/request-reset", passwordResetHandler.RequestPasswordReset)
		admin.GET("/password/verify-token", passwordResetHandler.VerifyResetToken)
		admin.POST("/password/reset", passwordResetHandler.ResetPassword)

		// 需要 Cookie 认证的后台接口
		adminAuth := admin.Group("")
		adminAuth.Use(AdminAuthMiddleware())
		{
			adminAuth.GET("/current-user", adminHandler.GetCurrentUserInfo)

			// 机构管理
			adminAuth.GET("/organisations", adminHandler.ListOrganisations)
			adminAuth.POST("/organisations", adminHandler.CreateOrganisation)

			// 援助项目管理
			campaignHandler := api.NewCampaignHandler()
			adminAuth.GET("/campaigns", campaignHandler.List)
			adminAuth.GET("/campaigns/:id", campaignHandler.Get)
			adminAuth.POST("/campaigns", campaignHandler.Create)
			adminAuth.PUT("/campaigns/:id", campaignHandler.Update)
			adminAuth.PUT("/campaigns/:id/status", campaignHandler.UpdateStatus)

			// 受助人管理
			adminAuth.GET("/beneficiaries", adminHandler.ListBeneficiaries)
			adminAuth.POST("/beneficiaries", adminHandler.OnboardBeneficiary)
			adminAuth.PUT("/beneficiaries/:id/status", adminHandler.UpdateBeneficiaryStatus)

			// 商户管理
			adminAuth.GET("/vendors", adminHandler.ListVendors)
			adminAuth.POST("/vendors", adminHandler.OnboardVendor)
			adminAuth.PUT("/vendors/:id/status", adminHandler.UpdateVendorStatus)

			// 类别目录管理
			categoryHandler := api.NewCategoryHandler()
			adminAuth.GET("/categories", categoryHandler.List)
			adminAuth.POST("/categories", categoryHandler.Create)
			adminAuth.PUT("/categories/:id", categoryHandler.Update)
			adminAuth.DELETE("/categories/:id", categoryHandler.Delete)

			// 总部统计与导出
			adminAuth.GET("/statistics", adminHandler.GetStatistics)
			adminAuth.GET("/export/excel", adminHandler.ExportExcel)

			// 管理员密码重置功能
			adminAuth.POST("/password/admin-reset", passwordResetHandler.AdminResetPassword)
			adminAuth.GET("/email-config", passwordResetHandler.GetEmailConfig)
		}
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组（供 App 端使用）
	v1 := r.Group("/api/v1")
	{
		// 认证相关路由（无需登录）
		authHandler := api.NewAuthHandler(cfg)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(5, time.Minute), authHandler.Login)

			// App 端密码重置（与后台共用令牌流程）
			auth.POST("/password/request-reset", passwordResetHandler.RequestPasswordReset)
			auth.POST("/password/reset", passwordResetHandler.ResetPassword)
		}

		// 类别目录（无需登录）
		categoryHandler := api.NewCategoryHandler()
		v1.GET("/categories", categoryHandler.GetCategories)

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			// 用户相关
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/password", authHandler.ChangePassword)

			// 进行中的援助项目（捐赠人浏览）
			campaignHandler := api.NewCampaignHandler()
			authorized.GET("/campaigns", campaignHandler.ListActive)

			// 受助人相关
			beneficiaryHandler := api.NewBeneficiaryHandler()
			beneficiary := authorized.Group("/beneficiary")
			beneficiary.Use(middleware.RequireRole(models.RoleBeneficiary))
			{
				beneficiary.GET("/dashboard", beneficiaryHandler.GetDashboard)
				beneficiary.GET("/transactions", beneficiaryHandler.ListTransactions)
			}

			// 商户收款相关
			transactionHandler := api.NewTransactionHandler()
			transactions := authorized.Group("/transactions")
			transactions.Use(middleware.RequireRole(models.RoleVendor))
			{
				transactions.POST("", transactionHandler.Create)
				transactions.GET("", transactionHandler.List)
			}

			// 捐赠相关
			donationHandler := api.NewDonationHandler(cfg)
			donations := authorized.Group("/donations")
			donations.Use(middleware.RequireRole(models.RoleDonor))
			{
				donations.POST("", donationHandler.Create)
				donations.GET("", donationHandler.List)
			}

			// 导出相关（受助人导出自己的消费记录）
			exportHandler := api.NewExportHandler()
			export := authorized.Group("/export")
			export.Use(middleware.RequireRole(models.RoleBeneficiary))
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/json", exportHandler.ExportJSON)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
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
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// AdminAuthMiddleware 后台管理 Cookie 认证中间件
// 仅做登录态检查，Cookie 签名校验在处理器内通过 adminauth 完成
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := c.Cookie("admin_user_id")
		if err != nil || userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "请先登录",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
