// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo contains the repository interfaces which are required
// by the use cases layer. Implementations live in the adapters layer
// (e.g., pkg/adapter/db/gormdb) and are injected into the use cases, so
// the core layers never depend on a concrete storage engine.
// The Pool is the process-wide shared handle; a Conn is acquired per
// operation from it, and a Tx may be started on a Conn whenever more
// than one statement must observe the ACID properties together.
package repo

import "context"

// ConnHandler is a callback which is given an acquired connection.
// The connection is released when the handler returns.
type ConnHandler func(context.Context, Conn) error

// Pool represents a database connection pool.
type Pool interface {
	// Conn acquires a connection, passes it to handler, and releases
	// it afterwards. The handler error is returned as is.
	Conn(ctx context.Context, handler ConnHandler) error
}
