// File: internal/store/postgres.go
package store

import (
	"context"

	"mood-journal/internal/database"
	"mood-journal/internal/model"
)

// Postgres 把上面的函式包成 service 需要的 UserStore / EntryStore
type Postgres struct {
	db database.DB
}

func NewPostgres(db database.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return GetUserByEmail(ctx, p.db, email)
}

func (p *Postgres) CreateUser(ctx context.Context, u *model.User) error {
	return CreateUser(ctx, p.db, u)
}

func (p *Postgres) LinkGoogleID(ctx context.Context, userID, googleID string) error {
	return LinkGoogleID(ctx, p.db, userID, googleID)
}

func (p *Postgres) CreateEntry(ctx context.Context, e *model.Entry) error {
	return CreateEntry(ctx, p.db, e)
}

func (p *Postgres) ListEntriesByUser(ctx context.Context, userID string) ([]model.Entry, error) {
	return ListEntriesByUser(ctx, p.db, userID)
}

func (p *Postgres) DeleteEntry(ctx context.Context, userID, entryID string) error {
	return DeleteEntry(ctx, p.db, userID, entryID)
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}
