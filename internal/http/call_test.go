package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalhttp "github.com/dehesa/finance-ig-sub001/internal/http"
	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

type pingResult struct {
	Status string `json:"status"`
}

func decodePing(dc internalhttp.DecodeContext, body []byte) (*pingResult, error) {
	var out pingResult
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func TestCall_Execute_DecodesSuccessfulResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(jsonBodyHandler(`{"status":"ok"}`))
	t.Cleanup(server.Close)

	client := internalhttp.NewClient(server.URL)
	t.Cleanup(func() { _ = client.Close() })

	call := internalhttp.NewCall[pingResult](client).
		Method(http.MethodGet).
		Path("/ping").
		Accept(http.StatusOK).
		Decode(decodePing)

	result, err := call.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Status)
}

func TestCall_Execute_ValidateStopsBeforeSending(t *testing.T) {
	t.Parallel()

	hit := false

	server := httptest.NewServer(httptestHandler(func(string, string, string) { hit = true }))
	t.Cleanup(server.Close)

	client := internalhttp.NewClient(server.URL)
	t.Cleanup(func() { _ = client.Close() })

	call := internalhttp.NewCall[pingResult](client).
		Method(http.MethodGet).
		Path("/ping").
		Validate(func(ctx context.Context) error {
			return ig.NewInvalidRequest("bad input", nil)
		}).
		Decode(decodePing)

	_, err := call.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, ig.IsInvalidRequest(err))
	assert.False(t, hit)
}

func TestCall_Execute_UnexpectedStatusYieldsInvalidResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(statusHandler(http.StatusInternalServerError))
	t.Cleanup(server.Close)

	client := internalhttp.NewClient(server.URL)
	t.Cleanup(func() { _ = client.Close() })

	call := internalhttp.NewCall[pingResult](client).
		Method(http.MethodGet).
		Path("/ping").
		Accept(http.StatusOK).
		Decode(decodePing)

	_, err := call.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, ig.IsInvalidResponse(err))
}

func TestCall_Execute_RequiresCredentialsWhenRequested(t *testing.T) {
	t.Parallel()

	var gotAPIKey string

	server := httptest.NewServer(httptestHandler(func(_, _, apiKey string) { gotAPIKey = apiKey }))
	t.Cleanup(server.Close)

	client := internalhttp.NewClient(server.URL)
	t.Cleanup(func() { _ = client.Close() })

	call := internalhttp.NewCall[struct{}](client).
		Method(http.MethodGet).
		Path("/accounts").
		Accept(http.StatusOK).
		ExpectBody(false).
		Credentials(func() (map[ig.HeaderKey]string, error) {
			return map[ig.HeaderKey]string{ig.HeaderAPIKey: "my-key"}, nil
		}).
		Decode(func(internalhttp.DecodeContext, []byte) (*struct{}, error) { return &struct{}{}, nil })

	_, err := call.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "my-key", gotAPIKey)
}

func TestCall_Execute_ClosedClientFailsBind(t *testing.T) {
	t.Parallel()

	client := internalhttp.NewClient("https://example.invalid")
	require.NoError(t, client.Close())

	call := internalhttp.NewCall[pingResult](client).
		Method(http.MethodGet).
		Path("/ping").
		Decode(decodePing)

	_, err := call.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, ig.IsSessionExpired(err))
}
