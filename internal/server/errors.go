// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoServersAreCreated = errors.New("no servers are created")

	// ErrListen is returned by RunServer when the listen address cannot be
	// bound, for example because another process already holds the port.
	ErrListen = errors.New("error binding listen address")

	// ErrServe is returned by RunServer when serving stops with an error.
	ErrServe = errors.New("error serving HTTP")

	// ErrShutdown is returned when graceful shutdown does not finish in
	// time.
	ErrShutdown = errors.New("error shutting down HTTP server")
)
