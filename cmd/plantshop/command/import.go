// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/plantshop/pkg/adapter/sheet/xlsx"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import plants.xlsx",
	Short: "Create plants which are listed in an xlsx workbook",
	Long: `Create plants which are listed in the first sheet of an xlsx
workbook. Its first row must contain the name, image, and price headers
(case-insensitive, in any order) and each following row describes one
plant. Blank rows are skipped. New plants take the configured default
in-stock flag. Either all plants are created or, in case of an error
such as a missing cell or an invalid price, none of them.`,
	RunE: importPlants,
	Args: cobra.ExactArgs(1),
}

func importPlants(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	nps, err := xlsx.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading plants: %w", err)
	}
	c, _, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	ps, err := schemaUseCase(c, p).Import(ctx, nps)
	if err != nil {
		return fmt.Errorf("importing plants: %w", err)
	}
	cmd.Printf("imported %d plants\n", len(ps))
	return nil
}

func init() {
	dbCmd.AddCommand(importCmd)
}
