// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"north-trips/internal/cache"
	"north-trips/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
	newTokenID      = uuid.NewString
)

// CustomClaims 定義 JWT 負載內容；角色只從這裡判斷，不保存在伺服器端
type CustomClaims struct {
	UserID int        `json:"user_id"`
	Name   string     `json:"name"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *CustomClaims) IsAdmin() bool {
	return c != nil && c.Role == model.RoleAdmin
}

// RoleOf 未登入 (nil) 視為 anonymous
func RoleOf(c *CustomClaims) model.Role {
	if c == nil || c.Role == "" {
		return model.RoleAnonymous
	}
	return c.Role
}

// RequireAdmin 管理員專屬操作的第一道檢查
func RequireAdmin(c *CustomClaims) error {
	if !c.IsAdmin() {
		return ErrUnauthorized
	}
	return nil
}

// RequireUser 需登入的操作
func RequireUser(c *CustomClaims) error {
	if c == nil || c.UserID == 0 {
		return ErrUnauthorized
	}
	return nil
}

// AuthenticateUser 根據使用者結構和明文密碼驗證，成功回傳使用者
func AuthenticateUser(ctx context.Context, user model.User, password string) (*model.User, error) {
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	// bcrypt 比對本身為固定時間
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func jwtSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}
	return []byte(secret), nil
}

// IssueAccessToken 依據使用者資訊與 TTL 產生 JWT
func IssueAccessToken(user model.User, ttl time.Duration) (string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", err
	}

	now := timeNow()
	claims := CustomClaims{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newTokenID(),
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyAccessToken 驗證並解析 JWT 令牌
func VerifyAccessToken(tokenString string) (*CustomClaims, error) {
	secret, err := jwtSecret()
	if err != nil {
		return nil, err
	}

	token, err := parseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

func revokedKey(jti string) string {
	return "revoked:" + jti
}

// RevokeToken 把 jti 放進黑名單，保留到 token 原本的到期時間
func RevokeToken(ctx context.Context, c cache.Cache, claims *CustomClaims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(timeNow())
	}
	if ttl <= 0 {
		return nil
	}
	if err := c.Set(ctx, revokedKey(claims.ID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("RevokeToken: %w", err)
	}
	return nil
}

// IsRevoked 查詢 jti 是否已登出
func IsRevoked(ctx context.Context, c cache.Cache, claims *CustomClaims) (bool, error) {
	if claims == nil || claims.ID == "" {
		return false, nil
	}
	err := c.Get(ctx, revokedKey(claims.ID)).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("IsRevoked: %w", err)
	}
}
