// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/momeni/plantshop/pkg/core/log"
)

// ServerOptions configures the HTTP server which serves an Engine.
// Zero timeouts are replaced by their defaults.
type ServerOptions struct {
	Addr              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// DefaultAddress is the listening address when none is configured.
const DefaultAddress = ":5555"

// Server serves a Gin engine over HTTP and supports graceful shutdown.
type Server struct {
	http *http.Server
	opts ServerOptions
}

// NewServer creates a Server for the e engine. It does not listen
// until the Serve method is called.
func NewServer(e *Engine, opts ServerOptions) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddress
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 15 * time.Second
	}
	if opts.ReadHeaderTimeout == 0 {
		opts.ReadHeaderTimeout = 5 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 30 * time.Second
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = 60 * time.Second
	}
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	return &Server{
		opts: opts,
		http: &http.Server{
			Addr:              opts.Addr,
			Handler:           e,
			ReadTimeout:       opts.ReadTimeout,
			ReadHeaderTimeout: opts.ReadHeaderTimeout,
			WriteTimeout:      opts.WriteTimeout,
			IdleTimeout:       opts.IdleTimeout,
		},
	}
}

// Serve listens on the configured address and serves requests until
// ctx is cancelled. Thereafter, it stops accepting new connections and
// waits (up to the shutdown timeout) for the ongoing requests.
// A nil error is returned after a graceful shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listening on %q: %w", s.http.Addr, err)
	}
	log.Info(ctx, "listening", slog.String("address", ln.Addr().String()))
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(ln)
	}()
	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving HTTP: %w", err)
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down")
	return s.Stop(context.WithoutCancel(ctx))
}

// Stop gracefully shuts down the server, waiting up to the configured
// shutdown timeout for the ongoing requests.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.opts.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}
	return nil
}
