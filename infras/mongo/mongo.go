package mongo

import (
	"context"
	"fmt"
	"garagebook/config"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultConnectTimeout = 10 * time.Second

// Connection is the report history store. A nil *Connection means MongoDB is not configured.
type Connection struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// New connects when DB_MONGO_URI is set and returns nil otherwise.
func New(cfg *config.Config) *Connection {
	uri := cfg.DB.Mongo.URI
	if uri == "" {
		log.Warn().Msg("No MongoDB URI configured, report history disabled")

		return nil
	}

	timeout := time.Duration(cfg.DB.Mongo.ConnectTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetConnectTimeout(timeout))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}

	if err = client.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping MongoDB")
	}

	log.Info().Str("database", cfg.DB.Mongo.Database).Msg("Connected to MongoDB")

	return &Connection{
		Client:   client,
		Database: client.Database(cfg.DB.Mongo.Database),
	}
}

func (c *Connection) Enabled() bool {
	return c != nil && c.Database != nil
}

func (c *Connection) Collection(name string) *mongo.Collection {
	return c.Database.Collection(name)
}

// CollectionNames lists the collections of the configured database, sorted by the server.
func (c *Connection) CollectionNames(ctx context.Context) ([]string, error) {
	if !c.Enabled() {
		return []string{}, nil
	}

	names, err := c.Database.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listing mongo collections: %w", err)
	}

	return names, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}

	if err := c.Client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("pinging mongo: %w", err)
	}

	return nil
}

func (c *Connection) Disconnect(ctx context.Context) {
	if !c.Enabled() {
		return
	}

	if err := c.Client.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to disconnect MongoDB")
	}
}
