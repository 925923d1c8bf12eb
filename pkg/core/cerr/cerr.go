// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr provides the core errors which carry their relevant
// HTTP status code, so the use cases layer can describe the class of
// a failure while the adapters layer decides how it should be reported.
package cerr

import (
	"fmt"
	"net/http"
)

type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

// MissingFieldsError indicates that some required fields were absent
// from an input. It holds the missing field names in their declaration
// order.
type MissingFieldsError []string

// Error implements the error interface.
func (e MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %v", []string(e))
}
