package store

import (
	"context"
	"fmt"

	"north-trips/internal/database"
	"north-trips/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, password_hash, phone, address, role, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Phone,
		&u.Address,
		&u.Role,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.Querier, userID int) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

// GetUserByEmail email 需先轉成小寫
func GetUserByEmail(ctx context.Context, db database.Querier, email string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	))
	if err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.Querier, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, phone, address, role)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Phone,
		u.Address,
		u.Role,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("CreateUser: %w", ErrDuplicate)
		}
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// UpdateProfile 只更新 name / phone / address，email 與角色不可由本人修改
func UpdateProfile(ctx context.Context, db database.Querier, u *model.User) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET name = $1, phone = $2, address = $3
		 WHERE id = $4`,
		u.Name,
		u.Phone,
		u.Address,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateProfile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateProfile: %w", ErrNotFound)
	}
	return nil
}

func ListUsers(ctx context.Context, db database.Querier) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ListUsers scan: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers rows: %w", err)
	}
	return users, nil
}

// DeleteUser 管理員帳號永遠不會被這個語句刪除
func DeleteUser(ctx context.Context, db database.Querier, ID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1 AND role <> 'admin'`,
		ID,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteUser: %w", ErrNotFound)
	}
	return nil
}

func AdminExists(ctx context.Context, db database.Querier) (bool, error) {
	var exists bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE role = 'admin')`,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("AdminExists: %w", err)
	}
	return exists, nil
}

func CountUsers(ctx context.Context, db database.Querier, role model.Role) (int, error) {
	var n int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1`,
		role,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountUsers: %w", err)
	}
	return n, nil
}
