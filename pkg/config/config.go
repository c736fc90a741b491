package config

import (
	"os"
	"time"
)

type Config struct {
	Port            string
	Env             string
	PostgresConnStr string
	MongoURI        string
	MongoDatabase   string

	// JWTSecret is handed to the handlers and middleware explicitly;
	// nothing reads it from the environment at call sites.
	JWTSecret string

	// Base URLs of the peer microservices.
	UsuariosAPIURL string
	MensajesAPIURL string

	// HTTPClientTimeout bounds every outbound call to a peer service,
	// including each per-followee fetch of the timeline fan-out.
	HTTPClientTimeout time.Duration
}

// Load builds the configuration for one service from the environment.
// defaultPort differs per service (3310 usuarios, 3311 mensajes, 3312 relaciones).
func Load(defaultPort string) *Config {
	return &Config{
		Port:              getEnv("PORT", defaultPort),
		Env:               getEnv("ENV", "development"),
		PostgresConnStr:   getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:          getEnv("MONGO_URI", ""),
		MongoDatabase:     getEnv("MONGO_DATABASE", "capasmensajes"),
		JWTSecret:         getEnv("JWT_SECRET", "mi-clave-secreta-para-el-proyecto"),
		UsuariosAPIURL:    getEnv("USUARIOS_API_URL", "http://localhost:3310/redesSocial/usuarios"),
		MensajesAPIURL:    getEnv("MENSAJES_API_URL", "http://localhost:3311/redesSocial/mensajes"),
		HTTPClientTimeout: getDurationEnv("HTTP_CLIENT_TIMEOUT", 5*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
