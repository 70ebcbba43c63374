package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Checkout CheckoutConfig
	Studio   StudioConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// StorageConfig selects the persistence backend. Driver is one of
// "memory", "mongo" or "postgres".
type StorageConfig struct {
	Driver string
	Seed   bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  int // in minutes
	RefreshExpiry int // in days
}

// CheckoutConfig holds the pricing rules applied at cart totals time.
// TaxRate is a fraction of the subtotal, DeliveryFee a flat amount
// charged on any non-empty cart.
type CheckoutConfig struct {
	TaxRate     float64
	DeliveryFee int64
}

// StudioConfig describes the placement surface. The door rectangle is
// a keep-out zone where furniture cannot be dropped.
type StudioConfig struct {
	DoorMinX float64
	DoorMaxX float64
	DoorMinY float64
	DoorMaxY float64
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("STORAGE_DRIVER", "memory")
	viper.SetDefault("STORAGE_SEED", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "homevista")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_ACCESS_EXPIRY", 15)
	viper.SetDefault("JWT_REFRESH_EXPIRY", 7)
	viper.SetDefault("CHECKOUT_TAX_RATE", 0.18)
	viper.SetDefault("CHECKOUT_DELIVERY_FEE", 2000)
	viper.SetDefault("STUDIO_DOOR_MIN_X", 45.0)
	viper.SetDefault("STUDIO_DOOR_MAX_X", 55.0)
	viper.SetDefault("STUDIO_DOOR_MIN_Y", 90.0)
	viper.SetDefault("STUDIO_DOOR_MAX_Y", 100.0)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Storage: StorageConfig{
			Driver: viper.GetString("STORAGE_DRIVER"),
			Seed:   viper.GetBool("STORAGE_SEED"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Mongo: MongoConfig{
			URI:      viper.GetString("MONGO_URI"),
			Database: viper.GetString("MONGO_DATABASE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  viper.GetInt("JWT_ACCESS_EXPIRY"),
			RefreshExpiry: viper.GetInt("JWT_REFRESH_EXPIRY"),
		},
		Checkout: CheckoutConfig{
			TaxRate:     viper.GetFloat64("CHECKOUT_TAX_RATE"),
			DeliveryFee: viper.GetInt64("CHECKOUT_DELIVERY_FEE"),
		},
		Studio: StudioConfig{
			DoorMinX: viper.GetFloat64("STUDIO_DOOR_MIN_X"),
			DoorMaxX: viper.GetFloat64("STUDIO_DOOR_MAX_X"),
			DoorMinY: viper.GetFloat64("STUDIO_DOOR_MIN_Y"),
			DoorMaxY: viper.GetFloat64("STUDIO_DOOR_MAX_Y"),
		},
	}
}
