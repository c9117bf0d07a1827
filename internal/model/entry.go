// File: internal/model/entry.go
package model

import "time"

const (
	MinMood = 0
	MaxMood = 10
)

// Entry 一筆心情紀錄，UserID 為擁有者
type Entry struct {
	ID        string    `db:"id" json:"_id"`
	UserID    string    `db:"user_id" json:"user"`
	Date      time.Time `db:"date" json:"date"`
	Mood      int       `db:"mood" json:"mood"`
	Note      string    `db:"note" json:"note,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// ValidMood 心情分數需落在 [MinMood, MaxMood]
func ValidMood(m int) bool {
	return m >= MinMood && m <= MaxMood
}
