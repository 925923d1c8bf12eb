// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/plantshop/pkg/core/usecase/schemauc"
	"github.com/spf13/cobra"
)

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database with an empty plants table",
	Long: `Initialize database with an empty plants table.
The database connection information are read from the config file.
An existing plants table is kept intact.`,
	RunE: initDB((*schemauc.UseCase).InitProd),
	Args: cobra.NoArgs,
}

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database with a few sample plants",
	Long: `Initialize database with the plants table and fill it with a
few sample plants which are suitable for a development environment.
The database connection information are read from the config file.
Sample plants are only added if the plants table is empty.`,
	RunE: initDB((*schemauc.UseCase).InitDev),
	Args: cobra.NoArgs,
}

func initDB(
	action func(*schemauc.UseCase, context.Context) error,
) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, _ []string) error {
		ctx := context.Background()
		c, _, err := loadConfig()
		if err != nil {
			return err
		}
		p, err := c.ConnectionPool(ctx)
		if err != nil {
			return fmt.Errorf("creating DB pool: %w", err)
		}
		defer p.Close()
		if err = action(schemaUseCase(c, p), ctx); err != nil {
			return fmt.Errorf("initializing DB: %w", err)
		}
		return nil
	}
}

func init() {
	dbCmd.AddCommand(initProdCmd)
	dbCmd.AddCommand(initDevCmd)
}
