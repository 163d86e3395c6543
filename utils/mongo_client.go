package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoOptions struct {
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	RetryWrites     bool
}

// ConnectMongo opens a pooled client and verifies it with a ping.
func ConnectMongo(ctx context.Context, o MongoOptions) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(o.URI).
		SetMaxPoolSize(o.MaxPoolSize).
		SetMinPoolSize(o.MinPoolSize).
		SetMaxConnIdleTime(o.MaxConnIdleTime).
		SetRetryWrites(o.RetryWrites)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info("connected to MongoDB", "maxPool", o.MaxPoolSize)
	return client, nil
}
