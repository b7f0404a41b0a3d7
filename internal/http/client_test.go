package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalhttp "github.com/dehesa/finance-ig-sub001/internal/http"
)

func TestClient_Do_SendsMethodPathAndHeaders(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath, gotHeader string

	server := httptest.NewServer(httptestHandler(func(method, path, header string) {
		gotMethod, gotPath, gotHeader = method, path, header
	}))
	t.Cleanup(server.Close)

	client := internalhttp.NewClient(server.URL)
	t.Cleanup(func() { _ = client.Close() })

	resp, err := client.Get(context.Background(), "/accounts", map[string]string{"X-IG-API-KEY": "my-key"})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "GET", gotMethod)
	assert.Equal(t, "/accounts", gotPath)
	assert.Equal(t, "my-key", gotHeader)
}

func TestClient_Do_ReturnsResponseBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(jsonBodyHandler(`{"ok":true}`))
	t.Cleanup(server.Close)

	client := internalhttp.NewClient(server.URL)
	t.Cleanup(func() { _ = client.Close() })

	resp, err := client.Get(context.Background(), "/ping", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
}

func TestClient_Close_IsIdempotentAndMarksDone(t *testing.T) {
	t.Parallel()

	client := internalhttp.NewClient("https://example.invalid")

	require.NoError(t, client.Close())
	require.NoError(t, client.Close())
	assert.True(t, client.Closed())

	select {
	case <-client.Done():
	default:
		t.Fatal("expected Done channel to be closed")
	}
}

func TestClient_Post_SendsBody(t *testing.T) {
	t.Parallel()

	var gotBody string

	server := httptest.NewServer(bodyCapturingHandler(&gotBody))
	t.Cleanup(server.Close)

	client := internalhttp.NewClient(server.URL)
	t.Cleanup(func() { _ = client.Close() })

	_, err := client.Post(context.Background(), "/session", []byte(`{"identifier":"u"}`), nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"identifier":"u"}`, gotBody)
}

func TestClient_Do_PercentEncodesQueryValues(t *testing.T) {
	t.Parallel()

	var gotQuery map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	client := internalhttp.NewClient(server.URL)
	t.Cleanup(func() { _ = client.Close() })

	_, err := client.Do(context.Background(), &internalhttp.Request{
		Method: http.MethodGet,
		Path:   "/markets",
		Query: map[string][]string{
			"filter":     {"A&B=C 100% déjà vu"},
			"timestamps": {"1", "2"},
		},
	})
	require.NoError(t, err)
	require.Contains(t, gotQuery, "filter")
	assert.Equal(t, "A&B=C 100% déjà vu", gotQuery["filter"][0])
	assert.Equal(t, []string{"1", "2"}, gotQuery["timestamps"])
}
