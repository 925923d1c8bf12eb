// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., as required by JSON
// serialization) since adding more tags does not complicate definition
// of a struct, but can prevent unnecessary structs duplication.
package model

import "errors"

// ErrPlantNotFound indicates that no plant with the asked identifier
// exists. Its message is reported to the REST API clients verbatim.
var ErrPlantNotFound = errors.New("Plant not found")

// Plant models one inventory item of the shop which is persisted in
// a database. The json tags describe its transport form.
// Only the IsInStock field may change after creation of a plant.
type Plant struct {
	ID        uint    `json:"id"`          // system-assigned identifier
	Name      string  `json:"name"`        // display name of the plant
	Image     string  `json:"image"`       // URL or path of its picture
	Price     float64 `json:"price"`       // unit price
	IsInStock bool    `json:"is_in_stock"` // availability flag
}

// NewPlant contains those fields which must be provided by a client in
// order to create a Plant. The ID is assigned by the storage engine
// and IsInStock takes its configured default value.
type NewPlant struct {
	Name  string
	Image string
	Price float64
}

// Plant returns a Plant instance (with no ID) which is initialized
// based on the np fields and the inStock availability flag.
func (np NewPlant) Plant(inStock bool) *Plant {
	return &Plant{
		Name:      np.Name,
		Image:     np.Image,
		Price:     np.Price,
		IsInStock: inStock,
	}
}

// PlantPatch describes a partial update of a Plant. Nil fields are
// left unchanged. The IsInStock is the only mutable plant field.
type PlantPatch struct {
	IsInStock *bool
}

// Empty reports if pp asks for no change at all.
func (pp PlantPatch) Empty() bool {
	return pp.IsInStock == nil
}

// Apply updates the p fields which are set in the pp patch and reports
// if p was actually changed.
func (pp PlantPatch) Apply(p *Plant) (changed bool) {
	if pp.IsInStock != nil && *pp.IsInStock != p.IsInStock {
		p.IsInStock = *pp.IsInStock
		changed = true
	}
	return
}
