package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

const CtxUserIDKey = "userID"

var ErrorUserNotLogin = errors.New("用户未登录")

// getCurrentUserID 取中间件放进上下文的当前用户 ID
func getCurrentUserID(c *gin.Context) (userID int64, err error) {
	uid, ok := c.Get(CtxUserIDKey)
	if !ok {
		err = ErrorUserNotLogin
		return
	}
	userID, ok = uid.(int64)
	if !ok {
		err = ErrorUserNotLogin
		return
	}
	return
}

// getOptionalUserID 未登录时返回 0，不报错
func getOptionalUserID(c *gin.Context) int64 {
	uid, ok := c.Get(CtxUserIDKey)
	if !ok {
		return 0
	}
	userID, _ := uid.(int64)
	return userID
}

// getPathID 解析路径里的数字 ID
func getPathID(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
