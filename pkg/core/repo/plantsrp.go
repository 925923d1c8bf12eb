// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/plantshop/pkg/core/model"
)

type PlantsConnQueryer interface {
	PlantsQueryer
}

type PlantsTxQueryer interface {
	PlantsQueryer
}

// PlantsQueryer lists the single-row plant operations. A missing plant
// is reported as a cerr.NotFound(model.ErrPlantNotFound) error.
type PlantsQueryer interface {
	List(ctx context.Context) ([]model.Plant, error)
	Create(ctx context.Context, p *model.Plant) (*model.Plant, error)
	Get(ctx context.Context, id uint) (*model.Plant, error)
	SetInStock(ctx context.Context, id uint, inStock bool) error
	Delete(ctx context.Context, id uint) error
}

type Plants interface {
	Conn(Conn) PlantsConnQueryer
	Tx(Tx) PlantsTxQueryer
}
