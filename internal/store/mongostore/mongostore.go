// Package mongostore 以 MongoDB 實作 users / entries 兩個 collection，
// 文件欄位沿用既有部署的命名（passwordHash、googleId、user、createdAt…）。
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mood-journal/internal/model"
	"mood-journal/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection   = "users"
	entriesCollection = "entries"
)

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash *string            `bson:"passwordHash,omitempty"`
	GoogleID     *string            `bson:"googleId,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d userDoc) toModel() *model.User {
	return &model.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		GoogleID:     d.GoogleID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type entryDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	User      primitive.ObjectID `bson:"user"`
	Date      time.Time          `bson:"date"`
	Mood      int                `bson:"mood"`
	Note      string             `bson:"note,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d entryDoc) toModel() model.Entry {
	return model.Entry{
		ID:        d.ID.Hex(),
		UserID:    d.User.Hex(),
		Date:      d.Date.UTC(),
		Mood:      d.Mood,
		Note:      d.Note,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// Store 與 store.Postgres 提供相同的方法集合
type Store struct {
	db      *mongo.Database
	users   *mongo.Collection
	entries *mongo.Collection
	now     func() time.Time
}

func New(db *mongo.Database) *Store {
	return &Store{
		db:      db,
		users:   db.Collection(usersCollection),
		entries: db.Collection(entriesCollection),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// EnsureIndexes 建立 email 唯一索引與 entries 的 (user, date) 索引
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("EnsureIndexes users: %w", err)
	}
	_, err = s.entries.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "date", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("EnsureIndexes entries: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var d userDoc
	if err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return d.toModel(), nil
}

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	now := s.now()
	d := userDoc{
		ID:           primitive.NewObjectID(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		GoogleID:     u.GoogleID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.users.InsertOne(ctx, d); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrDuplicateEmail
		}
		return fmt.Errorf("CreateUser: %w", err)
	}
	u.ID = d.ID.Hex()
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

// LinkGoogleID googleId 為空（缺欄位或 null）時才寫入
func (s *Store) LinkGoogleID(ctx context.Context, userID, googleID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return store.ErrNotFound
	}
	_, err = s.users.UpdateOne(ctx,
		bson.M{"_id": oid, "googleId": nil},
		bson.M{"$set": bson.M{"googleId": googleID, "updatedAt": s.now()}},
	)
	if err != nil {
		return fmt.Errorf("LinkGoogleID: %w", err)
	}
	return nil
}

func (s *Store) CreateEntry(ctx context.Context, e *model.Entry) error {
	owner, err := primitive.ObjectIDFromHex(e.UserID)
	if err != nil {
		return fmt.Errorf("CreateEntry: invalid owner id %q", e.UserID)
	}
	now := s.now()
	d := entryDoc{
		ID:        primitive.NewObjectID(),
		User:      owner,
		Date:      e.Date,
		Mood:      e.Mood,
		Note:      e.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.entries.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("CreateEntry: %w", err)
	}
	e.ID = d.ID.Hex()
	e.CreatedAt = now
	e.UpdatedAt = now
	return nil
}

func (s *Store) ListEntriesByUser(ctx context.Context, userID string) ([]model.Entry, error) {
	entries := []model.Entry{}
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return entries, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})
	cur, err := s.entries.Find(ctx, bson.M{"user": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("ListEntriesByUser: %w", err)
	}
	var docs []entryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("ListEntriesByUser: %w", err)
	}
	for _, d := range docs {
		entries = append(entries, d.toModel())
	}
	return entries, nil
}

func (s *Store) DeleteEntry(ctx context.Context, userID, entryID string) error {
	id, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return store.ErrNotFound
	}
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return store.ErrNotFound
	}
	res, err := s.entries.DeleteOne(ctx, bson.M{"_id": id, "user": owner})
	if err != nil {
		return fmt.Errorf("DeleteEntry: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
