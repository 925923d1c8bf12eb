// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the Gin Gonic web framework, so other packages may
// create an engine and its middlewares without importing the framework
// directly. The middlewares attach a request identifier and a deadline
// to each request context and log requests using the slog package.
package gin

import (
	"context"
	"log/slog"
	"time"

	ginslog "github.com/FabienMht/ginslog/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/plantshop/pkg/core/log"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

// RequestIDHeader is the HTTP header which carries the request
// identifier. It is echoed from the request when present, otherwise,
// a random UUID is generated.
const RequestIDHeader = "X-Request-ID"

// New instantiates a Gin engine using the given middlewares.
// Handlers may pass their *gin.Context as a context.Context since it
// falls back to the request context for deadlines and values.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.ContextWithFallback = true
	e.Use(middlewares...)
	return e
}

// Logger returns a middleware which logs each request using l.
func Logger(l *slog.Logger) HandlerFunc {
	return ginslog.New(l)
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}

// RequestID returns a middleware which reads or generates a request
// identifier, reports it in the response headers, and stores it in the
// request context, so log records of that request can be correlated.
func RequestID() HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		ctx := log.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Timeout returns a middleware which bounds the request context with
// the d timeout. Zero or negative d values disable the timeout.
func Timeout(d time.Duration) HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
