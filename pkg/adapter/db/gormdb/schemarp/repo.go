// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemarp provides a reification of the repo.Schema interface
// making it possible to create the database tables (if they are
// missing) and inspect their contents during the initialization.
package schemarp

import (
	"context"

	"github.com/momeni/plantshop/pkg/adapter/db/gormdb"
	"github.com/momeni/plantshop/pkg/adapter/db/gormdb/plantsrp"
	"github.com/momeni/plantshop/pkg/core/repo"
)

// Repo represents a schema management repository.
type Repo struct {
}

// New instantiates a schema management Repo struct. Although this New
// function does not perform complex operations, and users may use
// a &schemarp.Repo{} directly too, but this method improves the code
// readability as schemarp.New() makes the package to look alike a
// data type.
func New() *Repo {
	return &Repo{}
}

type txQueryer struct {
	*gormdb.Tx
}

// Tx unwraps the given repo.Tx instance, expecting to find an
// instance of *gormdb.Tx as created by this adapter layer.
// Otherwise, it will panic. Unwrapped transaction will be wrapped and
// returned as an instance of repo.SchemaTxQueryer interface, so
// it can be used in the use cases layer without requiring to type
// assert again and again.
func (schema *Repo) Tx(tx repo.Tx) repo.SchemaTxQueryer {
	tt := tx.(*gormdb.Tx)
	return txQueryer{Tx: tt}
}

// CreateTables creates all tables which are missing. Currently, the
// plants table is the only table.
func (tq txQueryer) CreateTables(ctx context.Context) error {
	return plantsrp.CreateTable(ctx, tq.Tx)
}

// CountPlants returns the number of rows in the plants table.
func (tq txQueryer) CountPlants(ctx context.Context) (int64, error) {
	return plantsrp.Count(ctx, tq.Tx)
}
