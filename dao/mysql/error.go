package mysql

import "errors"

var (
	ErrorUserExist       = errors.New("用户已存在")
	ErrorUserNotExist    = errors.New("用户不存在")
	ErrorInvalidPassword = errors.New("用户名或密码错误")
	ErrorPromptNotExist  = errors.New("提示词不存在")
	ErrorNoPermission    = errors.New("无权操作该提示词")
	ErrorFavoriteExist   = errors.New("已收藏过该提示词")
	ErrorFavoriteMissing = errors.New("尚未收藏该提示词")
)
