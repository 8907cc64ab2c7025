package controller

import (
	"errors"

	"github.com/DuoLi1999/promptx/dao/mysql"
	"github.com/DuoLi1999/promptx/logic"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FavoriteListHandler 当前用户的收藏列表
func FavoriteListHandler(c *gin.Context) {
	userID, err := getCurrentUserID(c)
	if err != nil {
		ResponseError(c, CodeNeedLogin)
		return
	}
	prompts, err := logic.GetFavorites(userID)
	if err != nil {
		zap.L().Error("logic.GetFavorites failed", zap.Int64("user_id", userID), zap.Error(err))
		ResponseError(c, CodeServerBusy)
		return
	}
	ResponseSuccess(c, prompts)
}

// AddFavoriteHandler 收藏提示词
func AddFavoriteHandler(c *gin.Context) {
	userID, err := getCurrentUserID(c)
	if err != nil {
		ResponseError(c, CodeNeedLogin)
		return
	}
	var p struct {
		PromptID int64 `json:"promptId,string" binding:"required"`
	}
	if err := c.ShouldBindJSON(&p); err != nil {
		ResponseError(c, CodeInvalidParams)
		return
	}
	if err := logic.AddFavorite(userID, p.PromptID); err != nil {
		switch {
		case errors.Is(err, mysql.ErrorPromptNotExist):
			ResponseError(c, CodeNotFound)
		case errors.Is(err, mysql.ErrorFavoriteExist):
			ResponseError(c, CodeFavoriteExist)
		default:
			zap.L().Error("logic.AddFavorite failed",
				zap.Int64("user_id", userID), zap.Int64("prompt_id", p.PromptID), zap.Error(err))
			ResponseError(c, CodeServerBusy)
		}
		return
	}
	ResponseSuccess(c, nil)
}

// RemoveFavoriteHandler 取消收藏，路径参数是提示词 ID
func RemoveFavoriteHandler(c *gin.Context) {
	userID, err := getCurrentUserID(c)
	if err != nil {
		ResponseError(c, CodeNeedLogin)
		return
	}
	promptID, err := getPathID(c, "id")
	if err != nil {
		ResponseError(c, CodeInvalidParams)
		return
	}
	if err := logic.RemoveFavorite(userID, promptID); err != nil {
		switch {
		case errors.Is(err, mysql.ErrorPromptNotExist), errors.Is(err, mysql.ErrorFavoriteMissing):
			ResponseError(c, CodeNotFound)
		default:
			zap.L().Error("logic.RemoveFavorite failed",
				zap.Int64("user_id", userID), zap.Int64("prompt_id", promptID), zap.Error(err))
			ResponseError(c, CodeServerBusy)
		}
		return
	}
	ResponseSuccess(c, nil)
}
