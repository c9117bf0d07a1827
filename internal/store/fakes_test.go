package store

import (
	"time"

	"mood-journal/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

/* ---------- 假實作 ---------- */

// fakeRow 依 dest 數量模擬兩種 Scan：
// 1) len(dest)==7 → users SELECT
// 2) len(dest)==2 → INSERT ... RETURNING created_at, updated_at
type fakeRow struct {
	scanErr error
	user    *model.User
	stamp   time.Time
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	switch len(dest) {
	case 7:
		u := r.user
		*dest[0].(*string) = u.ID
		*dest[1].(*string) = u.Name
		*dest[2].(*string) = u.Email
		*dest[3].(**string) = u.PasswordHash
		*dest[4].(**string) = u.GoogleID
		*dest[5].(*time.Time) = u.CreatedAt
		*dest[6].(*time.Time) = u.UpdatedAt
	case 2:
		*dest[0].(*time.Time) = r.stamp
		*dest[1].(*time.Time) = r.stamp
	default:
		panic("fakeRow.Scan: unexpected dest count")
	}
	return nil
}

// fakeRows 模擬 entries 多筆查詢
type fakeRows struct {
	data    []model.Entry
	idx     int
	scanErr error
	err     error
	closed  bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Next() bool                                   { return r.idx < len(r.data) }
func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	e := r.data[r.idx]
	r.idx++
	*dest[0].(*string) = e.ID
	*dest[1].(*string) = e.UserID
	*dest[2].(*time.Time) = e.Date
	*dest[3].(*int) = e.Mood
	*dest[4].(*string) = e.Note
	*dest[5].(*time.Time) = e.CreatedAt
	*dest[6].(*time.Time) = e.UpdatedAt
	return nil
}
func (r *fakeRows) Values() ([]any, error) { return nil, nil }
func (r *fakeRows) RawValues() [][]byte    { return nil }
func (r *fakeRows) Conn() *pgx.Conn        { return nil }
