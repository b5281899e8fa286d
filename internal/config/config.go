package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer

	Database Database `envPrefix:"DATABASE_"`
	Auth     Auth     `envPrefix:"AUTH_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host            string        `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Database selects the GORM dialector. mysql is the production store, sqlite
// serves local runs and tests.
type Database struct {
	Driver          string        `env:"DRIVER" envDefault:"mysql"`
	URL             string        `env:"URL"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"10"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"50"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"1h"`
	AutoMigrate     bool          `env:"AUTO_MIGRATE" envDefault:"true"`
}

type Auth struct {
	JWTSecret string `env:"JWT_SECRET"`
	Issuer    string `env:"ISSUER"`
}

func (h HTTPServer) Address() string {
	return h.Host + ":" + h.Port
}
