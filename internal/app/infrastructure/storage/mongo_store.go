package storage

import (
	"context"
	"errors"
	"fmt"
	"github.com/opfobo/taxmate-sub000/internal/app/domain/address"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/net/proxy"
	"time"
)

type MongoOptions struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
	// Dialer, если задан, используется для всех соединений (SOCKS5).
	Dialer proxy.ContextDialer
}

type MongoStore struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoStore(ctx context.Context, o MongoOptions) (*MongoStore, error) {
	clientOptions := options.Client().ApplyURI(o.URI)
	if o.Timeout > 0 {
		clientOptions.SetConnectTimeout(o.Timeout).SetServerSelectionTimeout(o.Timeout)
	}
	if o.Dialer != nil {
		clientOptions.SetDialer(o.Dialer)
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	s := &MongoStore{
		client:  client,
		coll:    client.Database(o.Database).Collection(o.Collection),
		timeout: o.Timeout,
	}

	if _, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	}); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create index: %w", err)
	}

	return s, nil
}

func (s *MongoStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *MongoStore) Save(ctx context.Context, r address.Record) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": r.ID}, r, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save record %s: %w", r.ID, err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (address.Record, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var r address.Record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return address.Record{}, ErrRecordNotFound
	}
	if err != nil {
		return address.Record{}, fmt.Errorf("get record %s: %w", id, err)
	}
	return r, nil
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]address.Record, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(ClampLimit(limit)))

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]address.Record, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
