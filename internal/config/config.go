/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"fmt"
	"os"
	"time"

	"dummy-bank-go/internal/models"
)

// Load builds the configuration from environment variables with sensible
// defaults for a local toy deployment. Only JWT_SECRET is required, and only
// when the HTTP server is started.
func Load() (*models.Config, error) {
	backend := getEnvString("STORAGE_BACKEND", "file")
	switch backend {
	case "file", "sqlite", "memory":
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q (want file, sqlite or memory)", backend)
	}

	hashScheme := getEnvString("HASH_SCHEME", "sha256")
	switch hashScheme {
	case "sha256", "bcrypt":
	default:
		return nil, fmt.Errorf("invalid HASH_SCHEME %q (want sha256 or bcrypt)", hashScheme)
	}

	readTimeout, err := getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := getEnvDuration("HTTP_WRITE_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	idleTimeout, err := getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	tokenTTL, err := getEnvDuration("TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	return &models.Config{
		Storage: models.StorageConfig{
			Backend:    backend,
			DataDir:    getEnvString("DATA_DIR", "data"),
			SQLitePath: getEnvString("SQLITE_PATH", "bank.db"),
		},
		Server: models.ServerConfig{
			Addr:            getEnvString("HTTP_ADDR", ":8080"),
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			IdleTimeout:     idleTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		Auth: models.AuthConfig{
			HashScheme: hashScheme,
			JWTSecret:  getEnvString("JWT_SECRET", ""),
			TokenTTL:   tokenTTL,
		},
		Seed: models.SeedConfig{
			File: getEnvString("SEED_FILE", ""),
		},
	}, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}
