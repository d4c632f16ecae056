package cmd

import "time"

// Config carries every process-level setting. Values come from the
// environment (.env in development) and are read once at startup; nothing
// else in the process touches os.Getenv.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr string

	JWTSecret string
	TokenTTL  time.Duration

	// DriverStaleAfter is the silence window after which an available
	// driver is swept offline.
	DriverStaleAfter time.Duration
}
