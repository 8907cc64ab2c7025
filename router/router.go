package router

import (
	"net/http"

	"github.com/DuoLi1999/promptx/controller"
	"github.com/DuoLi1999/promptx/middleware"
	"github.com/DuoLi1999/promptx/pkg/logger"
	"github.com/DuoLi1999/promptx/pkg/sse"

	"github.com/gin-gonic/gin"
)

// SetupRouter 注册全部路由
func SetupRouter(mode string) *gin.Engine {
	if mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(logger.GinLogger(), logger.GinRecovery(true))

	v1 := r.Group("/api/v1")

	// 公开接口
	v1.POST("/signup", controller.SignUpHandler)
	v1.POST("/login", controller.LoginHandler)
	v1.POST("/refresh_token", controller.RefreshTokenHandler)
	v1.GET("/categories", controller.CategoryListHandler)
	v1.GET("/categories/:id", controller.CategoryDetailHandler)
	v1.GET("/prompts", controller.PromptListHandler)
	v1.GET("/prompts/hot", controller.HotPromptListHandler)
	v1.GET("/prompts/:id", middleware.OptionalAuthMiddleware(), controller.PromptDetailHandler)
	v1.POST("/prompts/:id/view", controller.RecordViewHandler)
	v1.POST("/prompts/:id/copy", controller.RecordCopyHandler)

	// 通知事件流
	v1.GET("/events", sse.ServeSSE)

	// 登录后接口
	auth := v1.Group("")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		auth.POST("/logout", controller.LogoutHandler)
		auth.GET("/me", controller.MeHandler)
		auth.PUT("/me", controller.UpdateMeHandler)

		auth.POST("/prompts", controller.CreatePromptHandler)
		auth.PUT("/prompts/:id", controller.UpdatePromptHandler)
		auth.DELETE("/prompts/:id", controller.DeletePromptHandler)
		auth.GET("/user/prompts", controller.UserPromptListHandler)

		auth.GET("/favorites", controller.FavoriteListHandler)
		auth.POST("/favorites", controller.AddFavoriteHandler)
		auth.DELETE("/favorites/:id", controller.RemoveFavoriteHandler)

		auth.POST("/optimizer", controller.OptimizeHandler)
		auth.POST("/optimizer/metadata", controller.GenerateMetadataHandler)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "404"})
	})
	return r
}
