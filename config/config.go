package config

import (
	"context"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Config is the full configuration surface, populated from the environment.
type Config struct {
	Port       string        `envconfig:"PORT" default:"8000"`
	MongoURI   string        `envconfig:"MONGO_URI" required:"true"`
	DBName     string        `envconfig:"DB_NAME" required:"true"`
	JWTSecret  string        `envconfig:"JWT_SECRET" required:"true"`
	JWTExpiry  time.Duration `envconfig:"JWT_EXPIRY" default:"24h"`
	CORSOrigin string        `envconfig:"CORS_ORIGIN" default:"http://localhost:5173"`
	APIPrefix  string        `envconfig:"API_PREFIX" default:""`
	AdminEmail string        `envconfig:"ADMIN_EMAIL"`
	LogLevel   string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat  string        `envconfig:"LOG_FORMAT" default:"json"`

	MongoClient *mongo.Client `ignored:"true"`
}

// Load reads configuration from the environment and connects to MongoDB.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	cfg.MongoClient = client
	return &cfg, nil
}

// EnsureIndexes creates the unique indexes the identity store relies on:
// user_name and email are globally unique, phone_number only when present.
func (c *Config) EnsureIndexes(ctx context.Context) error {
	users := c.MongoClient.Database(c.DBName).Collection("users")

	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "phone_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	return err
}
