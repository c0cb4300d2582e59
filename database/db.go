package database

import (
	"context"
	"fmt"
	"time"

	"closetcircle/config"
	"closetcircle/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoClient is the shared client; nil until InitDB succeeds.
var MongoClient *mongo.Client

// InitDB connects to the marketplace database and verifies it with a ping.
// It is only called when the Mongo backend driver or the booking event log is in use.
func InitDB(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(config.AppConfig.DatabaseURL).
		SetAppName("closetcircle-assistant").
		SetTimeout(config.AppConfig.BackendTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("ping mongo: %w", err)
	}

	MongoClient = client
	utils.GetLogger().Info("Connected to MongoDB",
		zap.String("database", config.AppConfig.DatabaseName),
	)
	return nil
}

// Database returns the configured database. InitDB must have succeeded.
func Database() *mongo.Database {
	return MongoClient.Database(config.AppConfig.DatabaseName)
}

// Disconnect closes the shared client if one was opened.
func Disconnect(ctx context.Context) error {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Disconnect(ctx)
}
