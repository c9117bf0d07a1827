// File: internal/store/user.go
package store

import (
	"context"
	"fmt"
	"time"

	"mood-journal/internal/database"
	"mood-journal/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id::text, name, email, password_hash, google_id, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.GoogleID,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

// CreateUser 寫入新使用者並回填 ID 與時間戳；email 重複回傳 ErrDuplicateEmail
func CreateUser(ctx context.Context, db database.DB, u *model.User) error {
	id := uuid.NewString()
	var createdAt, updatedAt time.Time
	row := db.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash, google_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		id,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.GoogleID,
	)
	if err := row.Scan(&createdAt, &updatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("CreateUser: %w", err)
	}
	u.ID = id
	u.CreatedAt = createdAt
	u.UpdatedAt = updatedAt
	return nil
}

// LinkGoogleID 只在尚未連結時寫入 google_id，已連結則不變
func LinkGoogleID(ctx context.Context, db database.DB, userID, googleID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return ErrNotFound
	}
	_, err := db.Exec(ctx,
		`UPDATE users
		 SET google_id = $1, updated_at = now()
		 WHERE id = $2 AND google_id IS NULL`,
		googleID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("LinkGoogleID: %w", err)
	}
	return nil
}
