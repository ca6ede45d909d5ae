package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env holds the VOICENAV_* environment overrides.
type Env struct {
	Language          string        `env:"VOICENAV_LANGUAGE"`
	Role              string        `env:"VOICENAV_ROLE"`
	DataDir           string        `env:"VOICENAV_DATA_DIR"`
	Proxy             string        `env:"VOICENAV_PROXY"`
	Timeout           time.Duration `env:"VOICENAV_TIMEOUT"`
	TranslateAPIKey   string        `env:"VOICENAV_TRANSLATE_API_KEY"`
	TranslateEndpoint string        `env:"VOICENAV_TRANSLATE_URL"`
	TranslateCache    string        `env:"VOICENAV_TRANSLATE_CACHE"`
	ResponderEndpoint string        `env:"VOICENAV_RESPONDER_URL"`
	ResponderAPIKey   string        `env:"VOICENAV_RESPONDER_API_KEY"`
	SecretEndpoint    string        `env:"VOICENAV_SECRET_URL"`
	SecretToken       string        `env:"VOICENAV_SECRET_TOKEN"`
}

// ParseEnv reads Env from the process environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
