// File: internal/store/entry.go
package store

import (
	"context"
	"fmt"
	"time"

	"mood-journal/internal/database"
	"mood-journal/internal/model"

	"github.com/google/uuid"
)

func CreateEntry(ctx context.Context, db database.DB, e *model.Entry) error {
	if _, err := uuid.Parse(e.UserID); err != nil {
		return fmt.Errorf("CreateEntry: invalid owner id %q", e.UserID)
	}
	id := uuid.NewString()
	var createdAt, updatedAt time.Time
	row := db.QueryRow(ctx,
		`INSERT INTO entries (id, user_id, date, mood, note)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		id,
		e.UserID,
		e.Date,
		e.Mood,
		e.Note,
	)
	if err := row.Scan(&createdAt, &updatedAt); err != nil {
		return fmt.Errorf("CreateEntry: %w", err)
	}
	e.ID = id
	e.CreatedAt = createdAt
	e.UpdatedAt = updatedAt
	return nil
}

// ListEntriesByUser 依 date 由新到舊回傳該使用者全部紀錄
func ListEntriesByUser(ctx context.Context, db database.DB, userID string) ([]model.Entry, error) {
	entries := []model.Entry{}
	if _, err := uuid.Parse(userID); err != nil {
		return entries, nil
	}
	rows, err := db.Query(ctx,
		`SELECT id::text, user_id::text, date, mood, note, created_at, updated_at
		 FROM entries
		 WHERE user_id = $1
		 ORDER BY date DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListEntriesByUser: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e model.Entry
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Date,
			&e.Mood,
			&e.Note,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListEntriesByUser: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListEntriesByUser: %w", err)
	}
	return entries, nil
}

// DeleteEntry 只刪除屬於 userID 的紀錄；不存在與不屬於呼叫者都回傳 ErrNotFound
func DeleteEntry(ctx context.Context, db database.DB, userID, entryID string) error {
	if _, err := uuid.Parse(entryID); err != nil {
		return ErrNotFound
	}
	if _, err := uuid.Parse(userID); err != nil {
		return ErrNotFound
	}
	tag, err := db.Exec(ctx,
		`DELETE FROM entries WHERE id = $1 AND user_id = $2`,
		entryID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteEntry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
