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

package common

import (
	"context"
	"fmt"
	"log"
	"strings"

	"dummy-bank-go/internal/config"
	"dummy-bank-go/internal/credential"
	"dummy-bank-go/internal/ledger"
	"dummy-bank-go/internal/models"
	"dummy-bank-go/internal/storage"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from a .env file if one exists.
// Environment variables set via other means (shell export, docker, etc.)
// always take precedence.
func init() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment variables from .env file")
	}
}

// Services bundles everything a command needs to talk to the ledger.
type Services struct {
	Config *models.Config
	Engine *ledger.Engine
	Store  storage.Adapter
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// InitializeServices loads config, opens the configured storage backend and
// builds the ledger engine on top of it.
func InitializeServices(ctx context.Context) (*Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	adapter, err := NewAdapter(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	hasher, err := credential.NewHasher(cfg.Auth.HashScheme)
	if err != nil {
		adapter.Close()
		return nil, err
	}

	engine, err := ledger.NewEngine(ctx, adapter, hasher)
	if err != nil {
		adapter.Close()
		return nil, err
	}

	return &Services{Config: cfg, Engine: engine, Store: adapter}, nil
}

// NewAdapter opens the persistence backend named in the config.
func NewAdapter(ctx context.Context, cfg models.StorageConfig) (storage.Adapter, error) {
	switch cfg.Backend {
	case "file":
		return storage.NewFileAdapter(cfg.DataDir)
	case "sqlite":
		return storage.NewSQLiteAdapter(ctx, cfg.SQLitePath)
	case "memory":
		return storage.NewMemoryAdapter(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
}

func (s *Services) Close() {
	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			zap.L().Warn("Failed to close storage", zap.Error(err))
		}
	}
}

// Sync on a terminal stderr/stdout fails harmlessly; ignore just that case.
func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
