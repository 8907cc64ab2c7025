package logic

import (
	"fmt"
	"net/url"

	"github.com/DuoLi1999/promptx/dao/mysql"
	"github.com/DuoLi1999/promptx/models"
	"github.com/DuoLi1999/promptx/pkg/jwt"
	"github.com/DuoLi1999/promptx/pkg/snowflake"

	"golang.org/x/crypto/bcrypt"
)

// SignUp 注册新用户
func SignUp(p *models.ParamSignUp) error {
	if err := mysql.CheckUserExist(p.Email); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &models.User{
		UserID:   snowflake.GenID(),
		Email:    p.Email,
		Password: string(hashed),
		Name:     p.Name,
		// 默认头像按用户名生成
		Avatar: fmt.Sprintf("https://api.dicebear.com/7.x/initials/svg?seed=%s", url.QueryEscape(p.Name)),
	}
	return mysql.InsertUser(user)
}

// Login 校验密码并签发令牌
func Login(p *models.ParamLogin) (*models.LoginResult, error) {
	user, err := mysql.GetUserByEmail(p.Email)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(p.Password)); err != nil {
		return nil, mysql.ErrorInvalidPassword
	}
	aToken, rToken, err := jwt.GenToken(user.UserID, user.Email)
	if err != nil {
		return nil, err
	}
	return &models.LoginResult{
		User:         user,
		AccessToken:  aToken,
		RefreshToken: rToken,
	}, nil
}

// GetUserProfile 查当前用户资料
func GetUserProfile(userID int64) (*models.User, error) {
	return mysql.GetUserByID(userID)
}

// UpdateUserProfile 更新资料后返回最新数据
func UpdateUserProfile(userID int64, p *models.ParamUpdateProfile) (*models.User, error) {
	if err := mysql.UpdateUserProfile(userID, p); err != nil {
		return nil, err
	}
	return mysql.GetUserByID(userID)
}
