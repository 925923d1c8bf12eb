// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cfg1 makes it possible to load configuration settings with
// version 1.x.y since all minor and patch versions (which are known)
// with the same major version, can be loaded with one implementation.
// When trying to serialize and write out settings, the latest known
// minor and patch version will be used since older versions (with the
// same major version) can ignore the extra fields too.
package cfg1

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jackc/pgpassfile"
	"github.com/momeni/plantshop/pkg/adapter/config/settings"
	"github.com/momeni/plantshop/pkg/adapter/config/vers"
	"github.com/momeni/plantshop/pkg/adapter/db/gormdb"
	"github.com/momeni/plantshop/pkg/adapter/restful/gin"
	"github.com/momeni/plantshop/pkg/core/log"
	"github.com/momeni/plantshop/pkg/core/model"
	"github.com/momeni/plantshop/pkg/core/repo"
	"github.com/momeni/plantshop/pkg/core/usecase/plantsuc"
	"github.com/momeni/plantshop/pkg/core/usecase/schemauc"
	"gopkg.in/yaml.v3"
)

// These constants define the major, minor, and patch version of the
// configuration settings which are supported by the Config struct.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the semantic version of Config struct.
var Version = model.SemVer{Major, Minor, Patch}

// DatabaseURLEnv names the environment variable which (if non-empty)
// overrides the data source name which is computed from the database
// settings. It may be set in a .env file too.
const DatabaseURLEnv = "DATABASE_URL"

// Acceptable ranges of the numeric settings. Out of range values are
// adjusted to the nearest boundary and a warning is logged.
var (
	minOpenConns      = 1
	maxOpenConns      = 1000
	// one writer avoids SQLITE_BUSY failures of concurrent transactions
	maxSQLiteConns    = 1
	minRequestTimeout = settings.Duration(100 * time.Millisecond)
	maxRequestTimeout = settings.Duration(5 * time.Minute)
)

// Config contains all settings which are required by different parts
// of the project following the v1.x.y format, such as adapters or
// use cases. It is preferred to implement Config with primitive fields
// or other structs which are defined locally, not models or structs
// which are defined in lower layers, so the configuration can be
// versioned and kept intact while other layers can change freely.
type Config struct {
	Database Database // storage engine and its connection settings
	Gin      Gin      // Gin-Gonic instantiation and HTTP server settings
	Logging  Logging  // default slog logger settings
	Usecases Usecases // Configuration settings for supported use cases

	// Vers contains the configuration file version string which is
	// checked before the other settings are decoded.
	Vers vers.Config `yaml:",inline"`
}

// Database contains the database related configuration settings.
// The Path is used by the sqlite driver while the Host, Port, Name,
// Role, and PassDir are used by the postgres driver.
type Database struct {
	Driver  string // sqlite or postgres
	Path    string `yaml:",omitempty"` // sqlite database file path
	Host    string `yaml:",omitempty"` // domain name or IP address
	Port    int    `yaml:",omitempty"` // port number of the DBMS
	Name    string `yaml:",omitempty"` // database name
	Role    string `yaml:",omitempty"` // database role (user) name
	PassDir string `yaml:"pass-dir,omitempty"`

	MaxOpenConns *int  `yaml:"max-open-conns"`
	AutoMigrate  *bool `yaml:"auto-migrate"`  // create table at start
	QueryLogging *bool `yaml:"query-logging"` // log all SQL statements
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(ctx context.Context) (*gormdb.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return nil, fmt.Errorf(
			"%s.ConnectionPool: %w", c.Database.Driver, err,
		)
	}
	return p, nil
}

// ConnectionPool creates a database connection pool for the d.Driver
// storage engine using the data source name which is returned by the
// DSN method.
func (d Database) ConnectionPool(ctx context.Context) (*gormdb.Pool, error) {
	dsn, err := d.DSN()
	if err != nil {
		return nil, err
	}
	dl, err := gormdb.Dialector(d.Driver, dsn)
	if err != nil {
		return nil, err
	}
	opts := []gormdb.PoolOption{gormdb.WithMaxOpenConns(*d.MaxOpenConns)}
	if *d.QueryLogging {
		opts = append(opts, gormdb.WithQueryLogging())
	}
	return gormdb.NewPool(ctx, dl, opts...)
}

// DSN returns the data source name of the configured database.
// The DATABASE_URL environment variable takes precedence if it is set.
// Otherwise, the sqlite driver uses the d.Path file and the postgres
// driver uses a URL which embeds a password from the .pgpass file in
// the d.PassDir directory.
func (d Database) DSN() (string, error) {
	if u := os.Getenv(DatabaseURLEnv); u != "" {
		return u, nil
	}
	switch d.Driver {
	case gormdb.DriverSQLite:
		return d.Path, nil
	case gormdb.DriverPostgres:
		path := filepath.Join(d.PassDir, ".pgpass")
		u, err := d.ConnectionURL(path)
		if err != nil {
			return "", fmt.Errorf("using %q pass-file: %w", path, err)
		}
		return u, nil
	default:
		return "", fmt.Errorf("unsupported database driver: %q", d.Driver)
	}
}

// ConnectionURL returns the database connection URL embedding the host,
// port, role name, database name, and password value. These items are
// directly taken from the `d` settings, but the password value which is
// read from the given `path` file. Returned URL has the postgresql
// scheme. The `path` file should conform with the pgpass files format
// with lines like this:
//
//	host:port:dbname:role:password
//
// The first four fields may be `*` in order to match any value, and
// colons or backslashes in a field are escaped by a backslash.
func (d Database) ConnectionURL(path string) (string, error) {
	pf, err := pgpassfile.ReadPassfile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	pass := pf.FindPassword(d.Host, strconv.Itoa(d.Port), d.Name, d.Role)
	if pass == "" {
		return "", fmt.Errorf("no matching password line")
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(d.Role, pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String(), nil
}

// ValidateAndNormalize validates the database settings and fills the
// missing optional settings with their default values.
func (d *Database) ValidateAndNormalize() error {
	maxConns := &maxOpenConns
	switch d.Driver {
	case "":
		d.Driver = gormdb.DriverSQLite
		fallthrough
	case gormdb.DriverSQLite:
		if d.Path == "" {
			d.Path = "plants.db"
		}
		settings.Nil2Default(&d.MaxOpenConns, 1)
		maxConns = &maxSQLiteConns
	case gormdb.DriverPostgres:
		if d.Port == 0 {
			d.Port = 5432
		}
		hasURL := os.Getenv(DatabaseURLEnv) != ""
		if !hasURL && (d.Host == "" || d.Name == "" || d.Role == "") {
			return fmt.Errorf("postgres host, name, and role are required")
		}
		settings.Nil2Default(&d.MaxOpenConns, 10)
	default:
		return fmt.Errorf("unsupported database driver: %q", d.Driver)
	}
	if err := settings.VerifyRange(
		&d.MaxOpenConns, &minOpenConns, maxConns,
	); err != nil {
		log.Warn(
			context.Background(),
			"max open conns is adjusted by boundary values",
			slog.Int("value", *err.Value),
			slog.Int("adjusted", *d.MaxOpenConns),
			log.Err("violation", err),
		)
	}
	settings.Nil2Default(&d.AutoMigrate, true)
	settings.Nil2Zero(&d.QueryLogging)
	return nil
}

// Gin contains the Gin-Gonic engine and HTTP server settings.
type Gin struct {
	Address  string // listening address, like :5555
	Logger   *bool  // Whether to register the request logger middleware
	Recovery *bool  // Whether to register the gin.Recovery() middleware

	RequestTimeout  *settings.Duration `yaml:"request-timeout"`
	ShutdownTimeout *settings.Duration `yaml:"shutdown-timeout"`
}

// NewEngine instantiates a Gin engine with the request identifier and
// timeout middlewares, and (if enabled) the request logger (using the
// l logger) and recovery middlewares.
func (g Gin) NewEngine(l *slog.Logger) *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 4)
	middlewares = append(middlewares, gin.RequestID())
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger(l))
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	middlewares = append(
		middlewares, gin.Timeout(time.Duration(*g.RequestTimeout)),
	)
	return gin.New(middlewares...)
}

// ServerOptions returns the HTTP server settings.
func (g Gin) ServerOptions() gin.ServerOptions {
	return gin.ServerOptions{
		Addr:            g.Address,
		ShutdownTimeout: time.Duration(*g.ShutdownTimeout),
	}
}

// ValidateAndNormalize fills the missing Gin settings with their
// default values and adjusts the out of range request timeout.
func (g *Gin) ValidateAndNormalize() {
	if g.Address == "" {
		g.Address = gin.DefaultAddress
	}
	settings.Nil2Default(&g.Logger, true)
	settings.Nil2Default(&g.Recovery, true)
	settings.Nil2Default(
		&g.RequestTimeout, settings.Duration(10*time.Second),
	)
	settings.Nil2Default(
		&g.ShutdownTimeout, settings.Duration(5*time.Second),
	)
	if err := settings.VerifyRange(
		&g.RequestTimeout, &minRequestTimeout, &maxRequestTimeout,
	); err != nil {
		log.Warn(
			context.Background(),
			"request timeout is adjusted by boundary values",
			log.Valuer("value", err.Value),
			log.Valuer("adjusted", g.RequestTimeout),
			log.Err("violation", err),
		)
	}
}

// Logging contains the default logger settings.
type Logging struct {
	Level  string // debug, info, warn, or error
	Format string // text or json

	level slog.Level
}

// NewLogger creates a logger which writes to w and installs it as the
// default slog logger.
func (lg Logging) NewLogger(w io.Writer) (*slog.Logger, error) {
	return log.Setup(w, lg.Format, lg.level)
}

// ValidateAndNormalize parses the logging level and checks the format.
func (lg *Logging) ValidateAndNormalize() error {
	if lg.Level == "" {
		lg.Level = "info"
	}
	if err := lg.level.UnmarshalText([]byte(lg.Level)); err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	switch lg.Format {
	case "":
		lg.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %q", lg.Format)
	}
	return nil
}

// Usecases contains the use cases related settings.
type Usecases struct {
	Plants Plants // plants use cases related settings
}

// Plants contains the plants use cases settings.
type Plants struct {
	// DefaultInStock is the availability flag of the new plants.
	DefaultInStock *bool `yaml:"default-in-stock"`
}

// NewPlantsUseCase instantiates a plants use case.
func (c *Config) NewPlantsUseCase(
	p repo.Pool, r repo.Plants,
) (*plantsuc.UseCase, error) {
	opts := make([]plantsuc.Option, 0, 1)
	if c.Usecases.Plants.DefaultInStock != nil {
		opts = append(
			opts,
			plantsuc.WithDefaultInStock(*c.Usecases.Plants.DefaultInStock),
		)
	}
	return plantsuc.New(p, r, opts...)
}

// NewSchemaUseCase instantiates a schema initialization use case which
// inserts plants with the configured default availability flag.
func (c *Config) NewSchemaUseCase(
	p repo.Pool, s repo.Schema, r repo.Plants,
) *schemauc.UseCase {
	return schemauc.New(p, s, r, *c.Usecases.Plants.DefaultInStock)
}

// Load deserializes the data byte slice (in YAML format) into a new
// Config instance, and validates and normalizes it.
func Load(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates all settings and fills the missing
// optional settings by their default values.
func (c *Config) ValidateAndNormalize() error {
	if err := c.Vers.Validate(Major, Minor); err != nil {
		return fmt.Errorf(
			"expecting version v%d.%d: %w", Major, Minor, err,
		)
	}
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	c.Gin.ValidateAndNormalize()
	if err := c.Logging.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating logging settings: %w", err)
	}
	settings.Nil2Default(&c.Usecases.Plants.DefaultInStock, true)
	return nil
}

// Marshalled is an alternative form of Config struct which replaces
// its durations by their human-readable string representation.
// It is serialized instead of the Config by its MarshalYAML method.
type Marshalled struct {
	Database Database
	Gin      struct {
		Address         string
		Logger          *bool
		Recovery        *bool
		RequestTimeout  *string `yaml:"request-timeout,omitempty"`
		ShutdownTimeout *string `yaml:"shutdown-timeout,omitempty"`
	}
	Logging  Logging
	Usecases Usecases
	Vers     *vers.Marshalled `yaml:",inline"`
}

// MarshalYAML implements the yaml.Marshaler interface.
func (c *Config) MarshalYAML() (interface{}, error) {
	return c.Marshal(), nil
}

// Marshal creates and returns a Marshalled instance representing c.
func (c *Config) Marshal() *Marshalled {
	m := &Marshalled{}
	m.Database = c.Database
	m.Gin.Address = c.Gin.Address
	m.Gin.Logger = c.Gin.Logger
	m.Gin.Recovery = c.Gin.Recovery
	m.Gin.RequestTimeout = c.Gin.RequestTimeout.Marshal()
	m.Gin.ShutdownTimeout = c.Gin.ShutdownTimeout.Marshal()
	m.Logging = c.Logging
	m.Usecases = c.Usecases
	m.Vers = c.Vers.Marshal()
	return m
}

// Version returns the configuration settings version of c.
func (c *Config) Version() model.SemVer {
	return c.Vers.Versions.Config
}
