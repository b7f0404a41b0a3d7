package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalauth "github.com/dehesa/finance-ig-sub001/internal/auth"
	internalhttp "github.com/dehesa/finance-ig-sub001/internal/http"
	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

func newTestHistoryClient(t *testing.T, handler http.Handler) (*historyClient, func()) {
	t.Helper()

	server := httptest.NewServer(handler)

	apiKey, err := ig.NewAPIKey("key")
	require.NoError(t, err)

	token, err := ig.NewCertificateToken("cst", "sec", time.Time{})
	require.NoError(t, err)

	session := internalauth.New()
	session.Update(ig.Credentials{APIKey: apiKey, Token: token})

	httpClient := internalhttp.NewClient(server.URL)

	return &historyClient{http: httpClient, session: session}, func() {
		_ = httpClient.Close()
		server.Close()
	}
}

func TestHistoryClient_Transactions_StopsAtTotalPages(t *testing.T) {
	t.Parallel()

	hits := 0

	client, cleanup := newTestHistoryClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		page := r.URL.Query().Get("pageNumber")
		w.Header().Set("Content-Type", "application/json")

		switch page {
		case "1":
			_, _ = w.Write([]byte(`{"transactions":[{"reference":"T1"}],"metadata":{"pageData":{"pageSize":1,"pageNumber":1,"totalPages":2}}}`))
		case "2":
			_, _ = w.Write([]byte(`{"transactions":[{"reference":"T2"}],"metadata":{"pageData":{"pageSize":1,"pageNumber":2,"totalPages":2}}}`))
		default:
			t.Fatalf("unexpected page request %q", page)
		}
	}))
	defer cleanup()

	stream := client.Transactions(context.Background(), time.Now().Add(-time.Hour), time.Now())
	txs, err := stream.All()
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "T1", txs[0].Reference)
	assert.Equal(t, "T2", txs[1].Reference)
	assert.Equal(t, 2, hits)
}

func TestHistoryClient_Activity_FetchesSinglePage(t *testing.T) {
	t.Parallel()

	hits := 0

	client, cleanup := newTestHistoryClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"activities":[{"dealId":"D1"},{"dealId":"D2"}]}`))
	}))
	defer cleanup()

	stream := client.Activity(context.Background(), time.Now().Add(-time.Hour), time.Now())
	activities, err := stream.All()
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, 1, hits)
}
