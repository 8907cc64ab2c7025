package controller

import (
	"errors"

	"github.com/DuoLi1999/promptx/dao/mysql"
	"github.com/DuoLi1999/promptx/logic"
	"github.com/DuoLi1999/promptx/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CreatePromptHandler 创建提示词
// @Summary 创建提示词
// @Tags 提示词
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body models.ParamCreatePrompt true "创建参数"
// @Router /prompts [post]
func CreatePromptHandler(c *gin.Context) {
	userID, err := getCurrentUserID(c)
	if err != nil {
		ResponseError(c, CodeNeedLogin)
		return
	}
	p := new(models.ParamCreatePrompt)
	if err := c.ShouldBindJSON(p); err != nil {
		zap.L().Error("CreatePrompt with invalid param", zap.Error(err))
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			ResponseError(c, CodeInvalidParams)
			return
		}
		ResponseErrorWithMsg(c, CodeInvalidParams, removeTopStruct(errs.Translate(trans)))
		return
	}
	prompt, err := logic.CreatePrompt(userID, p)
	if err != nil {
		zap.L().Error("logic.CreatePrompt failed", zap.Int64("user_id", userID), zap.Error(err))
		ResponseError(c, CodeServerBusy)
		return
	}
	ResponseSuccess(c, prompt)
}

// PromptListHandler 分页查询提示词
func PromptListHandler(c *gin.Context) {
	p := new(models.ParamPromptList)
	if err := c.ShouldBindQuery(p); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			ResponseError(c, CodeInvalidParams)
			return
		}
		ResponseErrorWithMsg(c, CodeInvalidParams, removeTopStruct(errs.Translate(trans)))
		return
	}
	page, err := logic.GetPromptList(p)
	if err != nil {
		zap.L().Error("logic.GetPromptList failed", zap.Error(err))
		ResponseError(c, CodeServerBusy)
		return
	}
	ResponseSuccess(c, page)
}

// HotPromptListHandler 热度榜
func HotPromptListHandler(c *gin.Context) {
	prompts, err := logic.GetHotPrompts(c.Request.Context(), 10)
	if err != nil {
		zap.L().Error("logic.GetHotPrompts failed", zap.Error(err))
		ResponseError(c, CodeServerBusy)
		return
	}
	ResponseSuccess(c, prompts)
}

// PromptDetailHandler 提示词详情，登录用户附带 isFavorited
func PromptDetailHandler(c *gin.Context) {
	promptID, err := getPathID(c, "id")
	if err != nil {
		ResponseError(c, CodeInvalidParams)
		return
	}
	prompt, err := logic.GetPromptDetail(promptID, getOptionalUserID(c))
	if err != nil {
		if errors.Is(err, mysql.ErrorPromptNotExist) {
			ResponseError(c, CodeNotFound)
			return
		}
		zap.L().Error("logic.GetPromptDetail failed", zap.Int64("prompt_id", promptID), zap.Error(err))
		ResponseError(c, CodeServerBusy)
		return
	}
	ResponseSuccess(c, prompt)
}

// UserPromptListHandler 当前用户发布的提示词
func UserPromptListHandler(c *gin.Context) {
	userID, err := getCurrentUserID(c)
	if err != nil {
		ResponseError(c, CodeNeedLogin)
		return
	}
	prompts, err := logic.GetUserPrompts(userID)
	if err != nil {
		zap.L().Error("logic.GetUserPrompts failed", zap.Int64("user_id", userID), zap.Error(err))
		ResponseError(c, CodeServerBusy)
		return
	}
	ResponseSuccess(c, prompts)
}

// UpdatePromptHandler 作者更新提示词
func UpdatePromptHandler(c *gin.Context) {
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
	p := new(models.ParamUpdatePrompt)
	if err := c.ShouldBindJSON(p); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			ResponseError(c, CodeInvalidParams)
			return
		}
		ResponseErrorWithMsg(c, CodeInvalidParams, removeTopStruct(errs.Translate(trans)))
		return
	}
	prompt, err := logic.UpdatePrompt(userID, promptID, p)
	if err != nil {
		respondPromptError(c, promptID, err)
		return
	}
	ResponseSuccess(c, prompt)
}

// DeletePromptHandler 作者删除提示词
func DeletePromptHandler(c *gin.Context) {
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
	if err := logic.DeletePrompt(c.Request.Context(), userID, promptID); err != nil {
		respondPromptError(c, promptID, err)
		return
	}
	ResponseSuccess(c, nil)
}

// RecordViewHandler 浏览计数
func RecordViewHandler(c *gin.Context) {
	promptID, err := getPathID(c, "id")
	if err != nil {
		ResponseError(c, CodeInvalidParams)
		return
	}
	if err := logic.RecordView(promptID); err != nil {
		respondPromptError(c, promptID, err)
		return
	}
	ResponseSuccess(c, nil)
}

// RecordCopyHandler 复制计数
func RecordCopyHandler(c *gin.Context) {
	promptID, err := getPathID(c, "id")
	if err != nil {
		ResponseError(c, CodeInvalidParams)
		return
	}
	if err := logic.RecordCopy(promptID); err != nil {
		respondPromptError(c, promptID, err)
		return
	}
	ResponseSuccess(c, nil)
}

func respondPromptError(c *gin.Context, promptID int64, err error) {
	switch {
	case errors.Is(err, mysql.ErrorPromptNotExist):
		ResponseError(c, CodeNotFound)
	case errors.Is(err, mysql.ErrorNoPermission):
		ResponseError(c, CodeNoPermission)
	default:
		zap.L().Error("prompt operation failed", zap.Int64("prompt_id", promptID), zap.Error(err))
		ResponseError(c, CodeServerBusy)
	}
}
