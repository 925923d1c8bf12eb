// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings provides the generic helpers which are used by the
// versioned config packages for filling the missing optional settings,
// verifying their acceptable ranges, and (de)serializing durations in
// a human-readable format.
package settings

// Nil2Zero overwrites the (*t) pointer, which should be nil,
// in order to point to a newly allocated T instance and initializes it
// with the zero value of T type.
// If the (*t) pointer was not nil, Nil2Zero will perform no action.
func Nil2Zero[T any](t **T) {
	var zero T
	Nil2Default(t, zero)
}

// Nil2Default overwrites the (*t) pointer, if it is nil, in order to
// point to a newly allocated copy of the def default value.
// Settings which were given explicitly (even as zero values) are kept.
func Nil2Default[T any](t **T, def T) {
	if (*t) != nil {
		return
	}
	(*t) = &def
}
