// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gormdb adapts the GORM framework to the repo.Pool, repo.Conn,
// and repo.Tx interfaces. Two storage engines are supported: SQLite
// (using the pure Go github.com/glebarez/sqlite driver, no cgo) and
// PostgreSQL (using gorm.io/driver/postgres on top of pgx).
// Repository packages, such as plantsrp, unwrap the *Conn and *Tx
// instances and use their embedded *gorm.DB for queries.
package gormdb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/momeni/plantshop/pkg/core/repo"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Pool is a database connection pool which embeds the *gorm.DB.
type Pool struct {
	*gorm.DB
}

// PoolOption is a functional option for the NewPool function.
type PoolOption func(*poolConfig) error

type poolConfig struct {
	maxOpenConns int
	logLevel     logger.LogLevel
}

// WithMaxOpenConns limits the number of simultaneously open
// connections of the pool. SQLite databases should use one connection
// in order to avoid "database is locked" errors.
func WithMaxOpenConns(n int) PoolOption {
	return func(pc *poolConfig) error {
		if n <= 0 {
			return fmt.Errorf("max open conns (%d) is not positive", n)
		}
		pc.maxOpenConns = n
		return nil
	}
}

// WithQueryLogging makes GORM to log all SQL statements at the debug
// level, instead of logging only the slow and failed statements.
func WithQueryLogging() PoolOption {
	return func(pc *poolConfig) error {
		pc.logLevel = logger.Info
		return nil
	}
}

// NewPool opens a connection pool for the d dialector (see Dialector
// function) and tests it by acquiring a connection once. GORM messages
// are forwarded to the default slog logger.
func NewPool(
	ctx context.Context, d gorm.Dialector, opts ...PoolOption,
) (*Pool, error) {
	pc := &poolConfig{logLevel: logger.Warn}
	for _, opt := range opts {
		if err := opt(pc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	level := slog.LevelWarn
	if pc.logLevel == logger.Info {
		level = slog.LevelDebug
	}
	gdb, err := gorm.Open(d, &gorm.Config{
		Logger: logger.New(
			slog.NewLogLogger(slog.Default().Handler(), level),
			logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  pc.logLevel,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
				// Set to false in order to log with replaced vars
				ParameterizedQueries: true,
			}),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}
	pool := &Pool{DB: gdb}
	if pc.maxOpenConns > 0 {
		db, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("gdb.DB: %w", err)
		}
		db.SetMaxOpenConns(pc.maxOpenConns)
		db.SetMaxIdleConns(pc.maxOpenConns)
	}
	err = pool.Conn(ctx, NoOpConnHandler)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("testing connection: %w", err)
	}
	return pool, nil
}

type ConnHandler = repo.ConnHandler

func NoOpConnHandler(context.Context, repo.Conn) error {
	return nil
}

// Conn acquires a connection from p and passes it to f as a *Conn.
func (p *Pool) Conn(ctx context.Context, f ConnHandler) error {
	return p.DB.WithContext(ctx).Connection(func(c *gorm.DB) error {
		cc := &Conn{DB: c}
		return f(ctx, cc)
	})
}

// Close closes all connections of p.
func (p *Pool) Close() error {
	db, err := p.DB.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
