// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gormdb

import (
	"context"

	"github.com/momeni/plantshop/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer is satisfied by *Conn and *Tx, so the query functions of the
// repository packages may be written once as generic functions and
// called with either of them.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer
	GORM(ctx context.Context) *gorm.DB
}
