package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port         string        `env:"PORT,           default=3000"`
	Env          string        `env:"ENV,            default=development"`
	LogLevel     string        `env:"LOG_LEVEL,      default=info"`
	JWTSecret    string        `env:"JWT_SECRET"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN, default=24h"`

	Mongo      MongoConfig
	Redis      RedisConfig
	Attendance AttendanceConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=perusahaan_a"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type AttendanceConfig struct {
	URL     string        `env:"ATTENDANCE_URL,     default=http://localhost:3001/api/v1/attendance"`
	Timeout time.Duration `env:"ATTENDANCE_TIMEOUT, default=10s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
