package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env     string
	DB      DB
	Server  Server
	Redis   Redis
	Storage Storage
	Logger  Logger
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type Server struct {
	RunAddress     string  `env:"RUN_ADDRESS"`
	RateLimit      float64 `env:"RATE_LIMIT"`
	RateBurst      int     `env:"RATE_BURST"`
	MaxUploadBytes int64   `env:"MAX_UPLOAD_BYTES"`
}

// Redis пустой Addr отключает кэш документов
type Redis struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB"`
	TTL      time.Duration `env:"REDIS_TTL"`
}

// Storage настройки S3-совместимого хранилища фотографий и бэкапов
type Storage struct {
	Endpoint  string `env:"STORAGE_ENDPOINT"`
	AccessKey string `env:"STORAGE_ACCESS_KEY"`
	SecretKey string `env:"STORAGE_SECRET_KEY"`
	Region    string `env:"STORAGE_REGION"`
	Bucket    string `env:"STORAGE_BUCKET"`
	UseSSL    bool   `env:"STORAGE_USE_SSL"`
	PublicURL string `env:"STORAGE_PUBLIC_URL"`
}

type Logger struct {
	File string `env:"LOG_FILE"`
}

func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	viper.SetDefault("app_env", EnvLocal)
	viper.SetDefault("run_address", ":3001")
	viper.SetDefault("migrations_path", "migrations")
	viper.SetDefault("rate_limit", 5)
	viper.SetDefault("rate_burst", 10)
	viper.SetDefault("max_upload_bytes", 10<<20)
	viper.SetDefault("redis_ttl", 5*time.Minute)
	viper.SetDefault("storage_region", "us-east-1")
	viper.SetDefault("storage_bucket", "mindful-steps")

	config := Config{
		Env: viper.GetString("app_env"),
		DB: DB{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Server: Server{
			RunAddress:     viper.GetString("run_address"),
			RateLimit:      viper.GetFloat64("rate_limit"),
			RateBurst:      viper.GetInt("rate_burst"),
			MaxUploadBytes: viper.GetInt64("max_upload_bytes"),
		},
		Redis: Redis{
			Addr:     viper.GetString("redis_addr"),
			Password: viper.GetString("redis_password"),
			DB:       viper.GetInt("redis_db"),
			TTL:      viper.GetDuration("redis_ttl"),
		},
		Storage: Storage{
			Endpoint:  viper.GetString("storage_endpoint"),
			AccessKey: viper.GetString("storage_access_key"),
			SecretKey: viper.GetString("storage_secret_key"),
			Region:    viper.GetString("storage_region"),
			Bucket:    viper.GetString("storage_bucket"),
			UseSSL:    viper.GetBool("storage_use_ssl"),
			PublicURL: viper.GetString("storage_public_url"),
		},
		Logger: Logger{
			File: viper.GetString("log_file"),
		},
	}

	if config.DB.DatabaseURI == "" {
		log.Fatalln("DATABASE_URI is required")
	}

	return &config
}
