// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package plantsuc contains the plants UseCase which supports the
// plant inventory use cases:
//  1. Listing all plants,
//  2. Creating a plant,
//  3. Fetching a plant by its identifier,
//  4. Updating the stock availability of a plant,
//  5. Deleting a plant.
package plantsuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/momeni/plantshop/pkg/core/log"
	"github.com/momeni/plantshop/pkg/core/model"
	"github.com/momeni/plantshop/pkg/core/repo"
)

// UseCase represents a plants use case. It holds a database connection
// pool, the plants repository instance (to be guided with the DB pool),
// and the plants use case specific settings.
type UseCase struct {
	pool     repo.Pool
	plantsrp repo.Plants

	defaultInStock *bool
}

// New instantiates a plants use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(p repo.Pool, r repo.Plants, opts ...Option) (*UseCase, error) {
	uc := &UseCase{pool: p, plantsrp: r}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.defaultInStock == nil {
		inStock := true
		uc.defaultInStock = &inStock
	}
	return uc, nil
}

// DefaultInStock returns the availability flag which is given to the
// newly created plants.
func (plants *UseCase) DefaultInStock() bool {
	return *plants.defaultInStock
}

// List use case returns all plants in the order of their identifiers.
// An empty (non-nil) slice is returned when no plant exists.
func (plants *UseCase) List(ctx context.Context) (ps []model.Plant, err error) {
	err = plants.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := plants.plantsrp.Conn(c)
		ps, err = q.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if ps == nil {
		ps = []model.Plant{}
	}
	return ps, nil
}

// Create use case persists a new plant based on the np fields and the
// default availability flag. The created plant, including its freshly
// assigned identifier, is returned.
func (plants *UseCase) Create(ctx context.Context, np model.NewPlant) (p *model.Plant, err error) {
	err = plants.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := plants.plantsrp.Conn(c)
		p, err = q.Create(ctx, np.Plant(*plants.defaultInStock))
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "plant created", log.ID("id", p.ID))
	return p, nil
}

// Get use case fetches the id plant.
func (plants *UseCase) Get(ctx context.Context, id uint) (p *model.Plant, err error) {
	err = plants.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := plants.plantsrp.Conn(c)
		p, err = q.Get(ctx, id)
		return err
	})
	if err != nil {
		p = nil
	}
	return
}

// Update use case applies the patch partial update on the id plant
// and returns its updated version. The plant is fetched and (only if
// the patch changes it) updated in one transaction.
func (plants *UseCase) Update(ctx context.Context, id uint, patch model.PlantPatch) (p *model.Plant, err error) {
	var changed bool
	err = plants.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := plants.plantsrp.Tx(tx)
			p, err = q.Get(ctx, id)
			if err != nil {
				return err
			}
			if changed = patch.Apply(p); !changed {
				return nil
			}
			return q.SetInStock(ctx, id, p.IsInStock)
		})
	})
	if err != nil {
		return nil, err
	}
	if changed {
		log.Info(
			ctx, "plant stock updated",
			log.ID("id", id), slog.Bool("is_in_stock", p.IsInStock),
		)
	}
	return p, nil
}

// Delete use case removes the id plant permanently.
func (plants *UseCase) Delete(ctx context.Context, id uint) error {
	err := plants.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return plants.plantsrp.Conn(c).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	log.Info(ctx, "plant deleted", log.ID("id", id))
	return nil
}
