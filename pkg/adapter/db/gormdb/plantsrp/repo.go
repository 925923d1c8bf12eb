// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package plantsrp provides a reification of the repo.Plants interface
// on top of GORM. Each query is implemented once as a generic function
// over gormdb.Queryer and is exposed through connection and transaction
// specific queryers.
package plantsrp

import (
	"context"

	"github.com/momeni/plantshop/pkg/adapter/db/gormdb"
	"github.com/momeni/plantshop/pkg/core/model"
	"github.com/momeni/plantshop/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*gormdb.Conn
}

// Conn unwraps c, expecting a *gormdb.Conn instance as created by
// the gormdb adapter. Otherwise, it will panic.
func (plants *Repo) Conn(c repo.Conn) repo.PlantsConnQueryer {
	cc := c.(*gormdb.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) List(ctx context.Context) ([]model.Plant, error) {
	return List(ctx, cq.Conn)
}

func (cq connQueryer) Create(ctx context.Context, p *model.Plant) (*model.Plant, error) {
	return Create(ctx, cq.Conn, p)
}

func (cq connQueryer) Get(ctx context.Context, id uint) (*model.Plant, error) {
	return Get(ctx, cq.Conn, id)
}

func (cq connQueryer) SetInStock(ctx context.Context, id uint, inStock bool) error {
	return SetInStock(ctx, cq.Conn, id, inStock)
}

func (cq connQueryer) Delete(ctx context.Context, id uint) error {
	return Delete(ctx, cq.Conn, id)
}

type txQueryer struct {
	*gormdb.Tx
}

// Tx unwraps tx, expecting a *gormdb.Tx instance as created by
// the gormdb adapter. Otherwise, it will panic.
func (plants *Repo) Tx(tx repo.Tx) repo.PlantsTxQueryer {
	tt := tx.(*gormdb.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) List(ctx context.Context) ([]model.Plant, error) {
	return List(ctx, tq.Tx)
}

func (tq txQueryer) Create(ctx context.Context, p *model.Plant) (*model.Plant, error) {
	return Create(ctx, tq.Tx, p)
}

func (tq txQueryer) Get(ctx context.Context, id uint) (*model.Plant, error) {
	return Get(ctx, tq.Tx, id)
}

func (tq txQueryer) SetInStock(ctx context.Context, id uint, inStock bool) error {
	return SetInStock(ctx, tq.Tx, id, inStock)
}

func (tq txQueryer) Delete(ctx context.Context, id uint) error {
	return Delete(ctx, tq.Tx, id)
}
