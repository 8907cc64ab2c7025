package controller

import (
	"errors"
	"io"

	"github.com/DuoLi1999/promptx/logic"
	"github.com/DuoLi1999/promptx/models"
	"github.com/DuoLi1999/promptx/pkg/deepseek"
	"github.com/DuoLi1999/promptx/pkg/sse"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OptimizeHandler 提示词优化，SSE 流式返回
// @Summary 优化提示词（流式）
// @Description 按意图生成结构化提示词，增量以 `data: {"content":"..."}` 帧推送，`data: [DONE]` 收尾
// @Tags 优化器
// @Accept json
// @Produce text/event-stream
// @Security ApiKeyAuth
// @Param body body models.ParamOptimize true "优化参数"
// @Router /optimizer [post]
func OptimizeHandler(c *gin.Context) {
	// 每次调用发一个请求 ID，日志和前端排障都靠它对上号
	reqID := uuid.NewString()
	c.Header("X-Request-Id", reqID)
	userID, err := getCurrentUserID(c)
	if err != nil {
		ResponseError(c, CodeNeedLogin)
		return
	}
	p := new(models.ParamOptimize)
	if err := c.ShouldBindJSON(p); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			ResponseError(c, CodeInvalidParams)
			return
		}
		ResponseErrorWithMsg(c, CodeInvalidParams, removeTopStruct(errs.Translate(trans)))
		return
	}

	stream, err := logic.OpenOptimizeStream(c.Request.Context(), p)
	if err != nil {
		if errors.Is(err, deepseek.ErrNotConfigured) {
			ResponseError(c, CodeAINotConfigured)
			return
		}
		zap.L().Error("open optimize stream failed",
			zap.String("request_id", reqID), zap.Int64("user_id", userID), zap.Error(err))
		ResponseError(c, CodeAIUnavailable)
		return
	}
	defer stream.Close()

	sse.SetHeaders(c.Writer)
	ctx := c.Request.Context()
	for {
		delta, err := stream.Recv()
		if err != nil {
			// 客户端断开就直接收工，终止帧没有接收方
			if ctx.Err() != nil {
				return
			}
			if !errors.Is(err, io.EOF) {
				zap.L().Error("optimize stream aborted",
					zap.String("request_id", reqID), zap.Int64("user_id", userID), zap.Error(err))
			}
			// 上游无论正常结束还是中途出错，都发终止帧让前端停止等待
			sse.WriteDone(c.Writer)
			c.Writer.Flush()
			return
		}
		if err := sse.WriteContent(c.Writer, delta); err != nil {
			return
		}
		c.Writer.Flush()
	}
}

// GenerateMetadataHandler 为优化结果生成入库元数据
// @Summary 生成提示词元数据
// @Tags 优化器
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body models.ParamMetadata true "元数据参数"
// @Router /optimizer/metadata [post]
func GenerateMetadataHandler(c *gin.Context) {
	reqID := uuid.NewString()
	c.Header("X-Request-Id", reqID)
	userID, err := getCurrentUserID(c)
	if err != nil {
		ResponseError(c, CodeNeedLogin)
		return
	}
	p := new(models.ParamMetadata)
	if err := c.ShouldBindJSON(p); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			ResponseError(c, CodeInvalidParams)
			return
		}
		ResponseErrorWithMsg(c, CodeInvalidParams, removeTopStruct(errs.Translate(trans)))
		return
	}

	meta, err := logic.GenerateMetadata(c.Request.Context(), p)
	if err != nil {
		switch {
		case errors.Is(err, deepseek.ErrNotConfigured):
			ResponseError(c, CodeAINotConfigured)
		case errors.Is(err, logic.ErrEmptyCompletion):
			ResponseErrorWithMsg(c, CodeAIUnavailable, "无法生成元数据")
		default:
			zap.L().Error("logic.GenerateMetadata failed",
				zap.String("request_id", reqID), zap.Int64("user_id", userID), zap.Error(err))
			ResponseError(c, CodeAIUnavailable)
		}
		return
	}
	ResponseSuccess(c, meta)
}
