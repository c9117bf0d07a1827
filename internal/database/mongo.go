// File: internal/database/mongo.go
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultMongoDatabase URI 未指定資料庫名稱時使用
const DefaultMongoDatabase = "wellness_journal"

var mongoConnect = func(ctx context.Context, opts ...*options.ClientOptions) (*mongo.Client, error) {
	return mongo.Connect(ctx, opts...)
}

var mongoPing = func(ctx context.Context, c *mongo.Client) error {
	return c.Ping(ctx, readpref.Primary())
}

// MongoDatabaseName 由連線字串取出資料庫名稱
func MongoDatabaseName(uri string) (string, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("MongoDatabaseName: %w", err)
	}
	if cs.Database == "" {
		return DefaultMongoDatabase, nil
	}
	return cs.Database, nil
}

// NewMongoDatabase 連線並 ping，回傳 client 與對應的 *mongo.Database
func NewMongoDatabase(ctx context.Context, uri string) (*mongo.Client, *mongo.Database, error) {
	name, err := MongoDatabaseName(uri)
	if err != nil {
		return nil, nil, err
	}

	client, err := mongoConnect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("NewMongoDatabase: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoPing(pingCtx, client); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("NewMongoDatabase: %w", err)
	}
	return client, client.Database(name), nil
}
