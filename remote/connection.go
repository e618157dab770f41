// Copyright (C) 2026 The AeroGPU Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package remote submits command streams to an AeroGPU backend over gRPC.
package remote

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/wilsonzlin/aerogpu/core/log"
	"github.com/wilsonzlin/aerogpu/driver"
	"github.com/wilsonzlin/aerogpu/remote/service"
)

// The key of the metadata value that carries the authentication token. This
// is common knowledge between the driver and the backend executor.
const authTokenMetaDataName = "aerogpu-auth-token"

// Token is an authentication token shared with the backend. The empty token
// disables authentication.
type Token string

// NoAuth is the empty authentication token.
const NoAuth = Token("")

// Type aliases so callers do not use the gRPC generated code directly. Only
// the types aliased here are part of the package's surface.
type (
	// SubmitRequest carries one finalized command stream with its
	// allocation table.
	SubmitRequest = service.SubmitRequest
	// Allocation is one entry of a submission's allocation table.
	Allocation = service.Allocation
)

// Connection is a gRPC connection to a backend executor. It implements
// driver.Submitter. A Connection is created by Dial and must be closed by
// the owner.
type Connection struct {
	conn       *grpc.ClientConn
	servClient service.AerogpuClient
	authToken  Token
}

// Dial connects to the backend executor at addr, blocking until the
// connection is established or timeout expires.
func Dial(ctx context.Context, addr string, authToken Token, timeout time.Duration) (*Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	conn, err := grpc.DialContext(ctx, addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock())
	if err != nil {
		return nil, log.Errf(ctx, err, "Dialing %v", addr)
	}
	return &Connection{
		conn:       conn,
		servClient: service.NewAerogpuClient(conn),
		authToken:  authToken,
	}, nil
}

// Close shuts the connection down.
func (c *Connection) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
	c.conn = nil
	c.servClient = nil
}

func (c *Connection) attachAuthToken(ctx context.Context) context.Context {
	if len(c.authToken) != 0 {
		return metadata.NewOutgoingContext(ctx,
			metadata.Pairs(authTokenMetaDataName, string(c.authToken)))
	}
	return ctx
}

// Submit transmits a finalized command stream and its allocation table to
// the backend and returns the submission fence.
func (c *Connection) Submit(ctx context.Context, stream []byte, allocations []driver.Allocation) (uint64, error) {
	if c.servClient == nil {
		return 0, log.Err(ctx, nil, "Backend not connected")
	}
	ctx = c.attachAuthToken(ctx)
	req := &SubmitRequest{Stream: stream}
	for _, a := range allocations {
		req.Allocations = append(req.Allocations, &Allocation{Id: a.ID, SizeBytes: a.SizeBytes})
	}
	r, err := c.servClient.Submit(ctx, req)
	if err != nil {
		return 0, log.Err(ctx, err, "Submitting command stream")
	}
	return r.GetFence(), nil
}

// CompletedFence queries the backend for the most recent completed fence.
func (c *Connection) CompletedFence(ctx context.Context) (uint64, error) {
	if c.servClient == nil {
		return 0, log.Err(ctx, nil, "Backend not connected")
	}
	ctx = c.attachAuthToken(ctx)
	r, err := c.servClient.CompletedFence(ctx, &service.CompletedFenceRequest{})
	if err != nil {
		return 0, log.Err(ctx, err, "Querying completed fence")
	}
	return r.GetFence(), nil
}

// Ping verifies the backend connection is alive.
func (c *Connection) Ping(ctx context.Context) error {
	if c.servClient == nil {
		return log.Err(ctx, nil, "Backend not connected")
	}
	ctx = c.attachAuthToken(ctx)
	r, err := c.servClient.Ping(ctx, &service.PingRequest{})
	if err != nil {
		return log.Err(ctx, err, "Sending ping")
	}
	if r == nil {
		return log.Err(ctx, nil, "No response for ping")
	}
	return nil
}

// Shutdown asks the backend executor to stop serving.
func (c *Connection) Shutdown(ctx context.Context) error {
	if c.servClient == nil {
		return log.Err(ctx, nil, "Backend not connected")
	}
	ctx = c.attachAuthToken(ctx)
	if _, err := c.servClient.Shutdown(ctx, &service.ShutdownRequest{}); err != nil {
		return log.Err(ctx, err, "Sending shutdown request")
	}
	return nil
}

var _ driver.Submitter = (*Connection)(nil)
