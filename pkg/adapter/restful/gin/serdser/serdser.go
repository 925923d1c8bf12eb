// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser provides the common request deserialization and
// response serialization helpers of the REST resources. All failures
// are reported as a JSON object with an "error" key.
package serdser

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/plantshop/pkg/core/cerr"
	"github.com/momeni/plantshop/pkg/core/log"
)

// MissingFieldsMsg is reported when some required keys are absent.
const MissingFieldsMsg = "Missing required fields"

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// report fields by their JSON (or URI) keys instead of Go names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "uri"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return ""
	})
}

// Bind deserializes the c request into req using the b binding and
// validates it. Absent required fields are reported as a 400 response
// listing their names in the declaration order, and other errors are
// reported as a 400 response with the decoder message.
// It returns true if req is ready to be used.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	err := c.ShouldBindWith(req, b)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		var missing cerr.MissingFieldsError
		for _, ferr := range verrs {
			if ferr.Tag() != "required" {
				SerErr(c, cerr.BadRequest(ferr))
				return false
			}
			missing = append(missing, ferr.Field())
		}
		SerErr(c, cerr.BadRequest(missing))
		return false
	}
	var ierr *validator.InvalidValidationError
	if errors.As(err, &ierr) {
		SerErr(c, err)
		return false
	}
	SerErr(c, cerr.BadRequest(err))
	return false
}

// SerErr serializes err as the response of c. The *cerr.Error errors
// are reported with their status code and message while other errors
// are logged and hidden behind a generic 500 response.
func SerErr(c *gin.Context, err error) {
	var missing cerr.MissingFieldsError
	if errors.As(err, &missing) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   MissingFieldsMsg,
			"missing": []string(missing),
		})
		return
	}
	var ce *cerr.Error
	if errors.As(err, &ce) {
		c.JSON(ce.HTTPStatusCode, gin.H{
			"error": ce.Err.Error(),
		})
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		log.Warn(c, "request timed out", log.Err("err", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "request timed out",
		})
		return
	}
	log.Error(c, "request failed", log.Err("err", err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "internal server error",
	})
}
