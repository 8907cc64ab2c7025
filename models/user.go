package models

import "time"

// User 注册用户
// ID 通过 json string 序列化，雪花 ID 超出 JS 的安全整数范围（1<<53-1）
type User struct {
	UserID      int64     `db:"user_id" json:"id,string"`
	Email       string    `db:"email" json:"email"`
	Password    string    `db:"password" json:"-"`
	Name        string    `db:"name" json:"name"`
	Avatar      string    `db:"avatar" json:"avatar"`
	Bio         string    `db:"bio" json:"bio"`
	PromptCount int64     `db:"prompt_count" json:"promptCount"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// LoginResult 登录/刷新成功后的返回体
type LoginResult struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
