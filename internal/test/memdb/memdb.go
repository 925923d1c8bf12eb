// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memdb is an internal helper for the test packages which
// creates a private in-memory SQLite database per test, so repository
// and REST API tests may run without any external DBMS server.
package memdb

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/momeni/plantshop/pkg/adapter/db/gormdb"
	"github.com/momeni/plantshop/pkg/adapter/db/gormdb/schemarp"
	"github.com/momeni/plantshop/pkg/core/repo"
	"github.com/stretchr/testify/require"
)

var seq atomic.Int64

// DSN returns a unique SQLite data source name for an in-memory
// database which is shared by all connections of one pool.
func DSN(name string) string {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	return fmt.Sprintf(
		"file:%s_%d?mode=memory&cache=shared", name, seq.Add(1),
	)
}

// New opens an in-memory SQLite pool for t, creates the tables, and
// registers the pool closing as a cleanup function of t.
func New(ctx context.Context, t testing.TB) *gormdb.Pool {
	t.Helper()
	d, err := gormdb.Dialector(gormdb.DriverSQLite, DSN(t.Name()))
	require.NoError(t, err, "cannot create sqlite dialector")
	pool, err := gormdb.NewPool(ctx, d, gormdb.WithMaxOpenConns(1))
	require.NoError(t, err, "cannot open in-memory database")
	t.Cleanup(func() {
		require.NoError(t, pool.Close(), "failed to close the pool")
	})
	CreateTables(ctx, t, pool)
	return pool
}

// CreateTables creates the tables in the p database, so its tests
// can start with an empty plants table.
func CreateTables(ctx context.Context, t testing.TB, p repo.Pool) {
	t.Helper()
	err := p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return schemarp.New().Tx(tx).CreateTables(ctx)
		})
	})
	require.NoError(t, err, "failed to create tables")
}
