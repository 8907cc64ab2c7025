package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")

	mySecret      = []byte("promptx")
	accessExpire  = 24 * time.Hour
	refreshExpire = 30 * 24 * time.Hour
)

// Init 注入配置中的签名密钥和有效期
func Init(secret string, access, refresh time.Duration) {
	if secret != "" {
		mySecret = []byte(secret)
	}
	if access > 0 {
		accessExpire = access
	}
	if refresh > 0 {
		refreshExpire = refresh
	}
}

// MyClaims 自定义声明，在标准声明之外记录用户信息
type MyClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenToken 签发一对 access token 和 refresh token
// refresh token 不携带用户数据，只用来换新
func GenToken(userID int64, email string) (aToken, rToken string, err error) {
	c := MyClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessExpire)),
			Issuer:    "promptx",
		},
	}
	aToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(mySecret)
	if err != nil {
		return
	}
	rToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(refreshExpire)),
		Issuer:    "promptx",
	}).SignedString(mySecret)
	return
}

// ParseToken 解析并校验 access token
func ParseToken(tokenString string) (*MyClaims, error) {
	claims := new(MyClaims)
	token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RefreshToken 在 refresh token 有效的前提下换发新的 access token
func RefreshToken(aToken, rToken string) (newAToken, newRToken string, err error) {
	if _, err = jwt.Parse(rToken, keyFunc); err != nil {
		return
	}

	// access token 过期属于预期情况，其余错误一律拒绝
	claims := new(MyClaims)
	_, err = jwt.ParseWithClaims(aToken, claims, keyFunc)
	if err == nil {
		return GenToken(claims.UserID, claims.Email)
	}
	if errors.Is(err, jwt.ErrTokenExpired) {
		return GenToken(claims.UserID, claims.Email)
	}
	return
}

func keyFunc(_ *jwt.Token) (interface{}, error) {
	return mySecret, nil
}
