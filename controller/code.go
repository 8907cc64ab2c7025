package controller

import "net/http"

type ResCode int64

const (
	CodeSuccess ResCode = 1000 + iota
	CodeInvalidParams
	CodeUserExist
	CodeUserNotExist
	CodeInvalidPassword
	CodeServerBusy

	CodeNeedLogin
	CodeInvalidToken
	CodeNoPermission
	CodeNotFound
	CodeFavoriteExist

	CodeAINotConfigured
	CodeAIUnavailable
)

var codeMsgMap = map[ResCode]string{
	CodeSuccess:         "success",
	CodeInvalidParams:   "请求参数错误",
	CodeUserExist:       "用户已存在",
	CodeUserNotExist:    "用户不存在",
	CodeInvalidPassword: "用户名或密码错误",
	CodeServerBusy:      "服务繁忙",

	CodeNeedLogin:     "需要登录",
	CodeInvalidToken:  "无效的Token",
	CodeNoPermission:  "无权操作",
	CodeNotFound:      "资源不存在",
	CodeFavoriteExist: "已收藏过该提示词",

	CodeAINotConfigured: "DeepSeek API Key 未配置",
	CodeAIUnavailable:   "AI 服务暂时不可用，请稍后重试",
}

var codeStatusMap = map[ResCode]int{
	CodeInvalidParams:   http.StatusBadRequest,
	CodeUserExist:       http.StatusBadRequest,
	CodeUserNotExist:    http.StatusBadRequest,
	CodeInvalidPassword: http.StatusBadRequest,
	CodeServerBusy:      http.StatusInternalServerError,
	CodeNeedLogin:       http.StatusUnauthorized,
	CodeInvalidToken:    http.StatusUnauthorized,
	CodeNoPermission:    http.StatusForbidden,
	CodeNotFound:        http.StatusNotFound,
	CodeFavoriteExist:   http.StatusBadRequest,
	CodeAINotConfigured: http.StatusInternalServerError,
	CodeAIUnavailable:   http.StatusInternalServerError,
}

func (c ResCode) Msg() string {
	msg, ok := codeMsgMap[c]
	if !ok {
		return codeMsgMap[CodeServerBusy]
	}
	return msg
}

func (c ResCode) HTTPStatus() int {
	status, ok := codeStatusMap[c]
	if !ok {
		return http.StatusOK
	}
	return status
}
