// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the plantshop
// web project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for the database management actions.
// Three actions are supported. The init-dev and init-prod actions
// create the plants table (adding a few sample plants for development)
// and the import action bulk-creates plants from an xlsx workbook.
//
//	./plantshop [-c /path/of/main/config.yaml]      # start web server
//	./plantshop db init-dev [-c /path/of/main/config.yaml]
//	./plantshop db init-prod [-c /path/of/main/config.yaml]
//	./plantshop db import /path/of/plants.xlsx [-c ...]
//
// An optional .env file in the working directory is loaded before the
// config file, so CONFIG_FILE and DATABASE_URL may be set there.
package command

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/momeni/plantshop/pkg/adapter/config"
	"github.com/momeni/plantshop/pkg/adapter/config/cfg1"
	"github.com/momeni/plantshop/pkg/adapter/db/gormdb"
	"github.com/momeni/plantshop/pkg/adapter/db/gormdb/plantsrp"
	"github.com/momeni/plantshop/pkg/adapter/db/gormdb/schemarp"
	"github.com/momeni/plantshop/pkg/adapter/restful/gin"
	"github.com/momeni/plantshop/pkg/adapter/restful/gin/routes"
	"github.com/momeni/plantshop/pkg/core/log"
	"github.com/momeni/plantshop/pkg/core/usecase/schemauc"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "plantshop",
	Short: "A plant shop inventory REST API server",
	Long: `A plant shop inventory REST API server which lists, creates,
fetches, updates the stock availability of, and deletes plants.
Plants are stored in a SQLite database file by default, while a
PostgreSQL database may be configured too. Requests and responses
use the JSON format and the server listens on port 5555 by default.`,
	RunE: startWebServer,
	Args: cobra.NoArgs,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, l, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	if *c.Database.AutoMigrate {
		if err = schemaUseCase(c, p).InitProd(ctx); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}
	var e *gin.Engine = c.Gin.NewEngine(l)
	if err = routes.Register(e, p, c); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	s := gin.NewServer(e, c.Gin.ServerOptions())
	if err = s.Serve(ctx); err != nil {
		return fmt.Errorf("running HTTP server: %w", err)
	}
	return nil
}

// loadConfig loads the cfgPath configuration file and installs the
// configured default logger which is returned too.
func loadConfig() (*cfg1.Config, *slog.Logger, error) {
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	l, err := c.Logging.NewLogger(os.Stderr)
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}
	log.Info(
		context.Background(), "configs are loaded",
		slog.String("path", cfgPath),
		slog.String("driver", c.Database.Driver),
		slog.String("address", c.Gin.Address),
	)
	return c, l, nil
}

func schemaUseCase(c *cfg1.Config, p *gormdb.Pool) *schemauc.UseCase {
	return c.NewSchemaUseCase(p, schemarp.New(), plantsrp.New())
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code is
// zero for success and one for failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadDotEnv, fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// loadDotEnv loads the environment variables from the .env file (if
// it exists) without overriding the already set variables.
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "ignoring .env file: %v\n", err)
	}
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
