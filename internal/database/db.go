// File: internal/database/db.go
package database

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB 為 store 層對 users/entries 下 SQL 的最小介面，*pgxpool.Pool 直接實作
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(context.Context) error
	Close()
}

// Statement FakeDB 收到的一次呼叫
type Statement struct {
	Method string
	SQL    string
	Args   []any
}

// FakeDB 測試用；每次 Exec/Query/QueryRow 都記到 Statements，
// 對應的 Fn 未設定時 panic
type FakeDB struct {
	ExecFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	PingFn     func(ctx context.Context) error
	CloseFn    func()

	mu         sync.Mutex
	Statements []Statement
}

func (f *FakeDB) record(method, sql string, args []any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Statements = append(f.Statements, Statement{Method: method, SQL: sql, Args: args})
}

// Last 最後一次記錄的呼叫；沒有任何呼叫時回傳零值
func (f *FakeDB) Last() Statement {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Statements) == 0 {
		return Statement{}
	}
	return f.Statements[len(f.Statements)-1]
}

func (f *FakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.record("Exec", sql, args)
	if f.ExecFn == nil {
		panic("unexpected Exec: " + sql)
	}
	return f.ExecFn(ctx, sql, args...)
}

func (f *FakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.record("Query", sql, args)
	if f.QueryFn == nil {
		panic("unexpected Query: " + sql)
	}
	return f.QueryFn(ctx, sql, args...)
}

func (f *FakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.record("QueryRow", sql, args)
	if f.QueryRowFn == nil {
		panic("unexpected QueryRow: " + sql)
	}
	return f.QueryRowFn(ctx, sql, args...)
}

func (f *FakeDB) Ping(ctx context.Context) error {
	if f.PingFn == nil {
		panic("unexpected Ping")
	}
	return f.PingFn(ctx)
}

func (f *FakeDB) Close() {
	if f.CloseFn != nil {
		f.CloseFn()
	}
}
