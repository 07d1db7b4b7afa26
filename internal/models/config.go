package models

import "time"

// Config represents the application configuration
type Config struct {
	Storage StorageConfig
	Server  ServerConfig
	Auth    AuthConfig
	Seed    SeedConfig
}

// StorageConfig selects and parameterizes the persistence backend
type StorageConfig struct {
	Backend    string // "file", "sqlite" or "memory"
	DataDir    string // file backend: directory for accounts.json / transactions.json
	SQLitePath string // sqlite backend: database file path
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// AuthConfig holds credential hashing and session token settings
type AuthConfig struct {
	HashScheme string // "sha256" or "bcrypt"
	JWTSecret  string
	TokenTTL   time.Duration
}

// SeedConfig points at an optional YAML file of demo accounts
type SeedConfig struct {
	File string
}
