package mysql

import (
	"database/sql"
	"errors"

	"github.com/DuoLi1999/promptx/models"
)

// CheckUserExist 检查邮箱是否已被注册
func CheckUserExist(email string) error {
	sqlStr := `select count(user_id) from user where email = ?`
	var count int64
	if err := db.Get(&count, sqlStr, email); err != nil {
		return err
	}
	if count > 0 {
		return ErrorUserExist
	}
	return nil
}

// InsertUser 写入新用户，密码已在 logic 层加密
func InsertUser(user *models.User) error {
	sqlStr := `insert into user(user_id, email, password, name, avatar) values(?,?,?,?,?)`
	_, err := db.Exec(sqlStr, user.UserID, user.Email, user.Password, user.Name, user.Avatar)
	return err
}

// GetUserByEmail 按邮箱查用户，用于登录
func GetUserByEmail(email string) (*models.User, error) {
	user := new(models.User)
	sqlStr := `select user_id, email, password, name, avatar, bio, prompt_count, created_at, updated_at
	from user where email = ?`
	if err := db.Get(user, sqlStr, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrorUserNotExist
		}
		return nil, err
	}
	return user, nil
}

// GetUserByID 按用户 ID 查用户
func GetUserByID(userID int64) (*models.User, error) {
	user := new(models.User)
	sqlStr := `select user_id, email, password, name, avatar, bio, prompt_count, created_at, updated_at
	from user where user_id = ?`
	if err := db.Get(user, sqlStr, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrorUserNotExist
		}
		return nil, err
	}
	return user, nil
}

// UpdateUserProfile 只更新传入的非空字段
func UpdateUserProfile(userID int64, p *models.ParamUpdateProfile) error {
	sqlStr := `update user set
	name   = if(? = '', name, ?),
	avatar = if(? = '', avatar, ?),
	bio    = if(? = '', bio, ?)
	where user_id = ?`
	_, err := db.Exec(sqlStr, p.Name, p.Name, p.Avatar, p.Avatar, p.Bio, p.Bio, userID)
	return err
}
