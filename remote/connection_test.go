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

package remote

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"

	"github.com/wilsonzlin/aerogpu/core/assert"
	"github.com/wilsonzlin/aerogpu/core/log"
	"github.com/wilsonzlin/aerogpu/driver"
	"github.com/wilsonzlin/aerogpu/remote/service"
)

type fakeBackend struct {
	service.UnimplementedAerogpuServer
	submitted []*service.SubmitRequest
	tokens    []string
	fence     uint64
}

func (b *fakeBackend) noteToken(ctx context.Context) {
	token := ""
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if vals := md.Get(authTokenMetaDataName); len(vals) > 0 {
			token = vals[0]
		}
	}
	b.tokens = append(b.tokens, token)
}

func (b *fakeBackend) Submit(ctx context.Context, req *service.SubmitRequest) (*service.SubmitResponse, error) {
	b.noteToken(ctx)
	b.submitted = append(b.submitted, req)
	b.fence++
	return &service.SubmitResponse{Fence: b.fence}, nil
}

func (b *fakeBackend) CompletedFence(ctx context.Context, req *service.CompletedFenceRequest) (*service.CompletedFenceResponse, error) {
	b.noteToken(ctx)
	return &service.CompletedFenceResponse{Fence: b.fence}, nil
}

func (b *fakeBackend) Ping(ctx context.Context, req *service.PingRequest) (*service.PingResponse, error) {
	b.noteToken(ctx)
	return &service.PingResponse{}, nil
}

func dialFake(ctx context.Context, t *testing.T, token Token) (*Connection, *fakeBackend) {
	lis := bufconn.Listen(1024 * 1024)
	backend := &fakeBackend{}
	srv := grpc.NewServer()
	service.RegisterAerogpuServer(srv, backend)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.DialContext(ctx, "passthrough:///backend",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	assert.For(ctx, "Dial").ThatError(err).Succeeded()
	c := &Connection{
		conn:       conn,
		servClient: service.NewAerogpuClient(conn),
		authToken:  token,
	}
	t.Cleanup(c.Close)
	return c, backend
}

func TestSubmitRoundTrip(t *testing.T) {
	ctx := log.Testing(t)
	c, backend := dialFake(ctx, t, NoAuth)

	stream := []byte{1, 2, 3, 4}
	allocs := []driver.Allocation{{ID: 7, SizeBytes: 4096}, {ID: 9, SizeBytes: 64}}
	fence, err := c.Submit(ctx, stream, allocs)
	assert.For(ctx, "Submit").ThatError(err).Succeeded()
	assert.For(ctx, "fence").That(fence).Equals(uint64(1))

	assert.For(ctx, "submissions").That(len(backend.submitted)).Equals(1)
	req := backend.submitted[0]
	assert.For(ctx, "stream").ThatSlice(req.GetStream()).Equals(stream)
	assert.For(ctx, "allocations").That(len(req.GetAllocations())).Equals(2)
	assert.For(ctx, "alloc id").That(req.GetAllocations()[0].GetId()).Equals(uint32(7))
	assert.For(ctx, "alloc size").That(req.GetAllocations()[0].GetSizeBytes()).Equals(uint64(4096))

	completed, err := c.CompletedFence(ctx)
	assert.For(ctx, "CompletedFence").ThatError(err).Succeeded()
	assert.For(ctx, "completed").That(completed).Equals(uint64(1))
}

func TestAuthTokenAttached(t *testing.T) {
	ctx := log.Testing(t)
	c, backend := dialFake(ctx, t, Token("hunter2"))

	err := c.Ping(ctx)
	assert.For(ctx, "Ping").ThatError(err).Succeeded()
	assert.For(ctx, "token").That(backend.tokens[0]).Equals("hunter2")

	_, err = c.Submit(ctx, []byte{0}, nil)
	assert.For(ctx, "Submit").ThatError(err).Succeeded()
	assert.For(ctx, "token").That(backend.tokens[1]).Equals("hunter2")
}

func TestNoAuthTokenOmitted(t *testing.T) {
	ctx := log.Testing(t)
	c, backend := dialFake(ctx, t, NoAuth)

	err := c.Ping(ctx)
	assert.For(ctx, "Ping").ThatError(err).Succeeded()
	assert.For(ctx, "token").That(backend.tokens[0]).Equals("")
}
