// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gormdb

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Supported storage engine driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Dialector returns a GORM dialector for the driver storage engine
// which connects to the dsn data source. For SQLite, dsn is a file
// path or a URI like file:name?mode=memory&cache=shared and for the
// PostgreSQL, it is a postgresql:// URL or a key=value string.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverSQLite:
		return sqlite.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}
}
