package controller

import (
	"errors"

	"github.com/DuoLi1999/promptx/dao/mysql"
	"github.com/DuoLi1999/promptx/logic"
	"github.com/DuoLi1999/promptx/models"
	"github.com/DuoLi1999/promptx/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// SignUpHandler 注册
// @Summary 用户注册
// @Tags 用户
// @Accept json
// @Produce json
// @Param body body models.ParamSignUp true "注册参数"
// @Router /signup [post]
func SignUpHandler(c *gin.Context) {
	p := new(models.ParamSignUp)
	if err := c.ShouldBindJSON(p); err != nil {
		zap.L().Error("SignUp with invalid param", zap.Error(err))
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			ResponseError(c, CodeInvalidParams)
			return
		}
		ResponseErrorWithMsg(c, CodeInvalidParams, removeTopStruct(errs.Translate(trans)))
		return
	}
	if err := logic.SignUp(p); err != nil {
		zap.L().Error("logic.SignUp failed", zap.String("email", p.Email), zap.Error(err))
		if errors.Is(err, mysql.ErrorUserExist) {
			ResponseError(c, CodeUserExist)
			return
		}
		ResponseError(c, CodeServerBusy)
		return
	}
	ResponseSuccess(c, nil)
}

// LoginHandler 登录
// @Summary 用户登录
// @Tags 用户
// @Accept json
// @Produce json
// @Param body body models.ParamLogin true "登录参数"
// @Router /login [post]
func LoginHandler(c *gin.Context) {
	p := new(models.ParamLogin)
	if err := c.ShouldBindJSON(p); err != nil {
		zap.L().Error("Login with invalid param", zap.Error(err))
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			ResponseError(c, CodeInvalidParams)
			return
		}
		ResponseErrorWithMsg(c, CodeInvalidParams, removeTopStruct(errs.Translate(trans)))
		return
	}
	result, err := logic.Login(p)
	if err != nil {
		zap.L().Error("logic.Login failed", zap.String("email", p.Email), zap.Error(err))
		if errors.Is(err, mysql.ErrorUserNotExist) {
			ResponseError(c, CodeUserNotExist)
			return
		}
		if errors.Is(err, mysql.ErrorInvalidPassword) {
			ResponseError(c, CodeInvalidPassword)
			return
		}
		ResponseError(c, CodeServerBusy)
		return
	}
	ResponseSuccess(c, result)
}

// RefreshTokenHandler 用 refresh token 换新的 access token
// 参数放在查询串和 Header 里：Authorization: Bearer <access>，?refresh_token=<refresh>
func RefreshTokenHandler(c *gin.Context) {
	rt := c.Query("refresh_token")
	authHeader := c.Request.Header.Get("Authorization")
	if authHeader == "" || rt == "" {
		ResponseError(c, CodeInvalidToken)
		return
	}
	aToken, ok := stripBearer(authHeader)
	if !ok {
		ResponseError(c, CodeInvalidToken)
		return
	}
	newAToken, newRToken, err := jwt.RefreshToken(aToken, rt)
	if err != nil {
		zap.L().Error("jwt.RefreshToken failed", zap.Error(err))
		ResponseError(c, CodeInvalidToken)
		return
	}
	ResponseSuccess(c, gin.H{
		"access_token":  newAToken,
		"refresh_token": newRToken,
	})
}

func stripBearer(authHeader string) (string, bool) {
	const prefix = "Bearer "
	if len(authHeader) > len(prefix) && authHeader[:len(prefix)] == prefix {
		return authHeader[len(prefix):], true
	}
	return "", false
}

// MeHandler 查当前用户资料
func MeHandler(c *gin.Context) {
	userID, err := getCurrentUserID(c)
	if err != nil {
		ResponseError(c, CodeNeedLogin)
		return
	}
	user, err := logic.GetUserProfile(userID)
	if err != nil {
		zap.L().Error("logic.GetUserProfile failed", zap.Int64("user_id", userID), zap.Error(err))
		ResponseError(c, CodeServerBusy)
		return
	}
	ResponseSuccess(c, user)
}

// UpdateMeHandler 更新当前用户资料
func UpdateMeHandler(c *gin.Context) {
	userID, err := getCurrentUserID(c)
	if err != nil {
		ResponseError(c, CodeNeedLogin)
		return
	}
	p := new(models.ParamUpdateProfile)
	if err := c.ShouldBindJSON(p); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			ResponseError(c, CodeInvalidParams)
			return
		}
		ResponseErrorWithMsg(c, CodeInvalidParams, removeTopStruct(errs.Translate(trans)))
		return
	}
	user, err := logic.UpdateUserProfile(userID, p)
	if err != nil {
		zap.L().Error("logic.UpdateUserProfile failed", zap.Int64("user_id", userID), zap.Error(err))
		ResponseError(c, CodeServerBusy)
		return
	}
	ResponseSuccess(c, user)
}

// LogoutHandler 登出。JWT 无状态，客户端丢弃令牌即可，这里只做语义化端点
func LogoutHandler(c *gin.Context) {
	ResponseSuccess(c, nil)
}
