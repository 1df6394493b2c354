package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"TandaXN/config"
	"TandaXN/internal/handler"
	"TandaXN/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.RequestIDMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.SessionMiddleware()) // pending invite 依赖会话，匿名请求也要有

	v1 := h.Group("/v1")

	// 认证相关路由
	auth := v1.Group("/auth")
	if config.Cfg.RateLimitEnabled {
		auth.Use(middleware.AuthRateLimitMiddleware())
	}
	{
		auth.POST("/signup", handler.Signup)
		auth.POST("/login", handler.Login)
		auth.POST("/token/refresh", handler.RefreshToken)
		auth.POST("/logout", middleware.AuthMiddleware(), handler.Logout)
	}

	// 邀请路由。resolve 和 pending 槽位不要求登录，
	// 未注册用户点开邀请链接时就会用到
	invites := v1.Group("/invites")
	{
		invites.GET("/resolve", middleware.InviteResolveRateLimitMiddleware(), handler.ResolveInvite)
		invites.PUT("/pending", handler.StashPendingInvite)
		invites.GET("/pending", handler.GetPendingInvite)
		invites.DELETE("/pending", handler.DeclinePendingInvite)

		invites.POST("/share-link", middleware.AuthMiddleware(), handler.CreateShareLink)
		invites.POST("/accept", middleware.AuthMiddleware(), handler.AcceptInvite)
	}

	// 引导流程路由
	onboarding := v1.Group("/onboarding")
	onboarding.Use(middleware.AuthMiddleware())
	if config.Cfg.RateLimitEnabled {
		onboarding.Use(middleware.GeneralRateLimitMiddleware())
	}
	{
		onboarding.GET("/state", handler.GetOnboardingState)
		onboarding.POST("/steps/:step_id/complete", handler.CompleteOnboardingStep)
		onboarding.POST("/profile-fields/:field_id/complete", handler.CompleteProfileField)
		onboarding.POST("/skip", handler.SkipOnboarding)
		onboarding.POST("/reset", handler.ResetOnboarding)

		onboarding.GET("/tooltips/active", handler.GetActiveTooltip)
		onboarding.POST("/tooltips/skip", handler.SkipTooltips)
		onboarding.POST("/tooltips/:tooltip_id/dismiss", handler.DismissTooltip)
	}

	// 用户资料路由
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", handler.GetUserProfile)
		users.PATCH("/me", handler.UpdateUserProfile)
	}

	// 社区推荐路由
	communities := v1.Group("/communities")
	communities.Use(middleware.AuthMiddleware())
	{
		communities.GET("/suggested", handler.GetSuggestedCommunities)
		communities.DELETE("/suggested/:community_id", handler.DismissSuggestedCommunity)
	}
}
