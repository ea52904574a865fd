package config

import "github.com/spf13/viper"

// Config is built once at startup and injected; it is never mutated
// afterwards.
type Config struct {
	ServerAddr string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret     string
	TokenTTLHours int

	UploadDir string

	GinMode  string
	LogLevel string
	LogFile  string
}

// Load reads configuration from environment variables with development
// defaults.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_ADDR", ":8080")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "tasker")
	v.SetDefault("DB_PASSWORD", "tasker")
	v.SetDefault("DB_NAME", "tasker")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_SECRET", "change-me-in-production")
	v.SetDefault("TOKEN_TTL_HOURS", 24*7)
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")

	return &Config{
		ServerAddr:    v.GetString("SERVER_ADDR"),
		DBDriver:      v.GetString("DB_DRIVER"),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		DBSSLMode:     v.GetString("DB_SSLMODE"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		TokenTTLHours: v.GetInt("TOKEN_TTL_HOURS"),
		UploadDir:     v.GetString("UPLOAD_DIR"),
		GinMode:       v.GetString("GIN_MODE"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFile:       v.GetString("LOG_FILE"),
	}
}
