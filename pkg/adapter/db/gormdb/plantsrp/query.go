// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package plantsrp

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/plantshop/pkg/adapter/db/gormdb"
	"github.com/momeni/plantshop/pkg/core/cerr"
	"github.com/momeni/plantshop/pkg/core/model"
	"gorm.io/gorm"
)

// gPlant is the plants table row. The model.Plant is kept free of
// storage concerns and is converted to/from gPlant in this package.
type gPlant struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"not null"`
	Image     string  `gorm:"not null"`
	Price     float64 `gorm:"not null"`
	IsInStock bool    `gorm:"not null"`
}

func (gp *gPlant) TableName() string {
	return "plants"
}

func (gp *gPlant) Model() *model.Plant {
	return &model.Plant{
		ID:        gp.ID,
		Name:      gp.Name,
		Image:     gp.Image,
		Price:     gp.Price,
		IsInStock: gp.IsInStock,
	}
}

func newGPlant(p *model.Plant) *gPlant {
	return &gPlant{
		Name:      p.Name,
		Image:     p.Image,
		Price:     p.Price,
		IsInStock: p.IsInStock,
	}
}

func notFound() error {
	return cerr.NotFound(model.ErrPlantNotFound)
}

// CreateTable creates the plants table unless it exists already.
func CreateTable[Q gormdb.Queryer](ctx context.Context, q Q) error {
	m := q.GORM(ctx).Migrator()
	if m.HasTable(&gPlant{}) {
		return nil
	}
	if err := m.CreateTable(&gPlant{}); err != nil {
		return fmt.Errorf("creating plants table: %w", err)
	}
	return nil
}

// Count returns the number of plants rows.
func Count[Q gormdb.Queryer](ctx context.Context, q Q) (int64, error) {
	var n int64
	if err := q.GORM(ctx).Model(&gPlant{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	return n, nil
}

func List[Q gormdb.Queryer](ctx context.Context, q Q) ([]model.Plant, error) {
	var gps []gPlant
	if err := q.GORM(ctx).Order("id").Find(&gps).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	ps := make([]model.Plant, 0, len(gps))
	for i := range gps {
		ps = append(ps, *gps[i].Model())
	}
	return ps, nil
}

// Create inserts p, ignoring its ID, and returns the inserted plant
// with its assigned ID.
func Create[Q gormdb.Queryer](ctx context.Context, q Q, p *model.Plant) (*model.Plant, error) {
	gp := newGPlant(p)
	if err := q.GORM(ctx).Create(gp).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return gp.Model(), nil
}

func Get[Q gormdb.Queryer](ctx context.Context, q Q, id uint) (*model.Plant, error) {
	var gp gPlant
	err := q.GORM(ctx).Where("id = ?", id).Take(&gp).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, notFound()
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gp.Model(), nil
}

func SetInStock[Q gormdb.Queryer](ctx context.Context, q Q, id uint, inStock bool) error {
	gdb := q.GORM(ctx).Model(&gPlant{}).Where(
		"id = ?", id,
	).Update("is_in_stock", inStock)
	if err := gdb.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if gdb.RowsAffected == 0 {
		return notFound()
	}
	return nil
}

func Delete[Q gormdb.Queryer](ctx context.Context, q Q, id uint) error {
	gdb := q.GORM(ctx).Where("id = ?", id).Delete(&gPlant{})
	if err := gdb.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if gdb.RowsAffected == 0 {
		return notFound()
	}
	return nil
}
