// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// SchemaTxQueryer manages the database tables. Its methods need a
// transaction, so tables creation and their initial rows insertion
// may be persisted (or discarded) together.
type SchemaTxQueryer interface {
	// CreateTables creates the plants table if it does not exist.
	// Existing tables and their rows are left intact.
	CreateTables(ctx context.Context) error

	// CountPlants returns the number of rows in the plants table.
	CountPlants(ctx context.Context) (int64, error)
}

// Schema is the database schema management repository.
type Schema interface {
	Tx(Tx) SchemaTxQueryer
}
