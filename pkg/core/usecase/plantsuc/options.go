// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package plantsuc

import "errors"

// Option is a functional option for the plants use case.
type Option func(uc *UseCase) error

// WithDefaultInStock option configures a plants UseCase instance in
// order to create new plants with the given availability flag.
// In absence of this option, new plants are in stock.
// This option may be passed to the New() function.
func WithDefaultInStock(inStock bool) Option {
	return func(uc *UseCase) error {
		if uc.defaultInStock != nil {
			return errors.New("default in-stock flag is already configured")
		}
		uc.defaultInStock = &inStock
		return nil
	}
}
