package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID,required,notEmpty"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET,required,notEmpty"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL,required,notEmpty"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	DatabaseDSN string `env:"DATABASE_DSN,required,notEmpty"`

	// TokenSecret signs the pending-provisioning token that carries the
	// resolved identity through the profile-completion redirect.
	TokenSecret string `env:"AUTH_TOKEN_SECRET,required,notEmpty"`

	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	HandshakeTTL time.Duration `env:"HANDSHAKE_TTL" envDefault:"10m"`

	// CookieSecure is switched off only for local plain-HTTP development.
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"true"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
