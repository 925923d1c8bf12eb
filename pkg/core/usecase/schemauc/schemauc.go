// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemauc contains the database initialization use cases.
// The InitProd prepares an empty database for the production usage by
// creating the plants table. The InitDev does the same and fills the
// table with a few sample plants (if it is empty), so a development
// environment has something to show. The Import bulk-creates plants
// which are read from an external source, such as a spreadsheet.
// Each use case runs in a single transaction, hence, it either
// succeeds completely or leaves the database untouched.
package schemauc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/momeni/plantshop/pkg/core/log"
	"github.com/momeni/plantshop/pkg/core/model"
	"github.com/momeni/plantshop/pkg/core/repo"
)

// DevPlants lists the sample plants which are inserted by InitDev.
var DevPlants = []model.NewPlant{
	{Name: "Aloe", Image: "./images/aloe.jpg", Price: 11.50},
	{Name: "ZZ Plant", Image: "./images/zz-plant.jpg", Price: 25.98},
	{Name: "Pilea peperomioides", Image: "./images/pilea.jpg", Price: 5.99},
}

// UseCase represents the schema initialization use cases.
type UseCase struct {
	pool     repo.Pool
	schemarp repo.Schema
	plantsrp repo.Plants

	defaultInStock bool
}

// New instantiates a schema UseCase. The defaultInStock is the
// availability flag of the inserted plants.
func New(
	p repo.Pool, s repo.Schema, r repo.Plants, defaultInStock bool,
) *UseCase {
	return &UseCase{
		pool:           p,
		schemarp:       s,
		plantsrp:       r,
		defaultInStock: defaultInStock,
	}
}

// InitProd creates the plants table if it is missing.
func (uc *UseCase) InitProd(ctx context.Context) error {
	return uc.tx(ctx, func(ctx context.Context, tx repo.Tx) error {
		return uc.schemarp.Tx(tx).CreateTables(ctx)
	})
}

// InitDev creates the plants table if it is missing and inserts the
// DevPlants sample plants if the table has no rows. Calling InitDev
// multiple times does not duplicate the sample plants.
func (uc *UseCase) InitDev(ctx context.Context) error {
	return uc.tx(ctx, func(ctx context.Context, tx repo.Tx) error {
		s := uc.schemarp.Tx(tx)
		if err := s.CreateTables(ctx); err != nil {
			return err
		}
		n, err := s.CountPlants(ctx)
		if err != nil {
			return fmt.Errorf("counting plants: %w", err)
		}
		if n != 0 {
			log.Info(
				ctx, "plants table is not empty, skipping samples",
				slog.Int64("count", n),
			)
			return nil
		}
		_, err = uc.insert(ctx, tx, DevPlants)
		return err
	})
}

// Import creates the plants table if it is missing and inserts all of
// the nps plants. The created plants are returned in the nps order.
func (uc *UseCase) Import(
	ctx context.Context, nps []model.NewPlant,
) (ps []model.Plant, err error) {
	err = uc.tx(ctx, func(ctx context.Context, tx repo.Tx) error {
		if err := uc.schemarp.Tx(tx).CreateTables(ctx); err != nil {
			return err
		}
		ps, err = uc.insert(ctx, tx, nps)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "plants imported", slog.Int("count", len(ps)))
	return ps, nil
}

func (uc *UseCase) insert(
	ctx context.Context, tx repo.Tx, nps []model.NewPlant,
) ([]model.Plant, error) {
	q := uc.plantsrp.Tx(tx)
	ps := make([]model.Plant, 0, len(nps))
	for i, np := range nps {
		p, err := q.Create(ctx, np.Plant(uc.defaultInStock))
		if err != nil {
			return nil, fmt.Errorf("creating plant #%d: %w", i+1, err)
		}
		ps = append(ps, *p)
	}
	return ps, nil
}

func (uc *UseCase) tx(ctx context.Context, h repo.TxHandler) error {
	return uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, h)
	})
}
