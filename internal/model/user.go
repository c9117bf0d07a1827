// File: internal/model/user.go
package model

import "time"

// User 帳號資料；PasswordHash 與 GoogleID 至少其一存在才能登入
type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash *string   `db:"password_hash" json:"-"`
	GoogleID     *string   `db:"google_id" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// HasPassword 是否為可用的 email/password 帳號
func (u User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// HasGoogle 是否已連結 Google 身分
func (u User) HasGoogle() bool {
	return u.GoogleID != nil && *u.GoogleID != ""
}

func (u User) HasGoogleSubject(sub string) bool {
	return u.HasGoogle() && *u.GoogleID == sub
}
