package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"north-trips/internal/database"
	"north-trips/internal/model"
	"north-trips/internal/store"
)

var (
	getUserByID        = store.GetUserByID
	getUserByEmail     = store.GetUserByEmail
	createUser         = store.CreateUser
	updateProfile      = store.UpdateProfile
	listUsers          = store.ListUsers
	deleteUser         = store.DeleteUser
	adminExists        = store.AdminExists
	listBookingsByUser = store.ListBookingsByUser
)

// RegisterInput 註冊表單
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    *string
	Address  *string
}

// ProfileInput 個人資料可修改的欄位
type ProfileInput struct {
	Name    string
	Phone   *string
	Address *string
}

// Profile 個人頁面：使用者與其訂單 (新到舊)
type Profile struct {
	User     model.User      `json:"user"`
	Bookings []model.Booking `json:"bookings"`
}

// optional 空字串存成 NULL
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// Register 建立一般使用者；email 一律轉小寫
func Register(ctx context.Context, db database.DB, in RegisterInput) (*model.User, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}
	u, err := createUser(ctx, db, &model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
		Phone:        optional(in.Phone),
		Address:      optional(in.Address),
		Role:         model.RoleUser,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("Register: %w", err)
	}
	return u, nil
}

// Login 驗證帳密並簽發 token；帳號不存在與密碼錯誤回傳同一個錯誤
func Login(ctx context.Context, db database.DB, email, password string, ttl time.Duration) (string, *model.User, error) {
	user, err := getUserByEmail(ctx, db, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("Login: %w", err)
	}
	authUser, err := AuthenticateUser(ctx, *user, password)
	if err != nil {
		return "", nil, err
	}
	token, err := IssueAccessToken(*authUser, ttl)
	if err != nil {
		return "", nil, fmt.Errorf("Login: %w", err)
	}
	return token, authUser, nil
}

// EnsureAdmin 沒有任何管理員時建立一個；回傳是否有新建
func EnsureAdmin(ctx context.Context, db database.DB, name, email, password string) (bool, error) {
	exists, err := adminExists(ctx, db)
	if err != nil {
		return false, fmt.Errorf("EnsureAdmin: %w", err)
	}
	if exists {
		return false, nil
	}
	hash, err := HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("EnsureAdmin: %w", err)
	}
	if _, err := createUser(ctx, db, &model.User{
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}); err != nil {
		return false, fmt.Errorf("EnsureAdmin: %w", err)
	}
	return true, nil
}

func GetProfile(ctx context.Context, db database.DB, actor *CustomClaims) (*Profile, error) {
	if err := RequireUser(actor); err != nil {
		return nil, err
	}
	user, err := getUserByID(ctx, db, actor.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("GetProfile: %w", err)
	}
	bookings, err := listBookingsByUser(ctx, db, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("GetProfile: %w", err)
	}
	return &Profile{User: *user, Bookings: bookings}, nil
}

func UpdateProfile(ctx context.Context, db database.DB, actor *CustomClaims, in ProfileInput) (*model.User, error) {
	if err := RequireUser(actor); err != nil {
		return nil, err
	}
	u := &model.User{
		ID:      actor.UserID,
		Name:    strings.TrimSpace(in.Name),
		Phone:   optional(in.Phone),
		Address: optional(in.Address),
	}
	if err := updateProfile(ctx, db, u); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("UpdateProfile: %w", err)
	}
	updated, err := getUserByID(ctx, db, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("UpdateProfile: %w", err)
	}
	return updated, nil
}

func ListUsers(ctx context.Context, db database.DB, actor *CustomClaims) ([]model.User, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	users, err := listUsers(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

// DeleteUser 管理員帳號不可刪除；使用者的訂單與工單保留
func DeleteUser(ctx context.Context, db database.DB, actor *CustomClaims, id int) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}
	target, err := getUserByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if target.IsAdmin() {
		return ErrAdminUndeletable
	}
	if err := deleteUser(ctx, db, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("DeleteUser: %w", err)
	}
	return nil
}
