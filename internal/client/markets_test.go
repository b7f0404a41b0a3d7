package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalauth "github.com/dehesa/finance-ig-sub001/internal/auth"
	internalhttp "github.com/dehesa/finance-ig-sub001/internal/http"
	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

func newTestMarketsClient(t *testing.T, handler http.Handler) (*marketsClient, func()) {
	t.Helper()

	server := httptest.NewServer(handler)

	apiKey, err := ig.NewAPIKey("key")
	require.NoError(t, err)

	token, err := ig.NewCertificateToken("cst", "sec", time.Time{})
	require.NoError(t, err)

	session := internalauth.New()
	session.Update(ig.Credentials{APIKey: apiKey, Token: token})

	httpClient := internalhttp.NewClient(server.URL)

	return &marketsClient{http: httpClient, session: session}, func() {
		_ = httpClient.Close()
		server.Close()
	}
}

func TestMarketsClient_GetByEpics_RejectsTooMany(t *testing.T) {
	t.Parallel()

	client, cleanup := newTestMarketsClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("server should not be contacted when validation fails")
	}))
	defer cleanup()

	epics := make([]ig.Epic, 51)
	for i := range epics {
		e, err := ig.NewEpic("EPIC")
		require.NoError(t, err)
		epics[i] = e
	}

	_, err := client.GetByEpics(context.Background(), epics)
	require.Error(t, err)
	assert.Equal(t, "ig: InvalidRequest: You cannot pass more than 50 epics", err.Error())
}

func TestMarketsClient_GetByEpics_RejectsEmpty(t *testing.T) {
	t.Parallel()

	client, cleanup := newTestMarketsClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("server should not be contacted when validation fails")
	}))
	defer cleanup()

	_, err := client.GetByEpics(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, ig.IsInvalidRequest(err))
}

func TestMarketsClient_GetByEpics_ResolvesLastUpdatedToAccountTimezone(t *testing.T) {
	t.Parallel()

	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Date", "Wed, 21 Oct 2026 07:28:00 GMT")
		_, _ = w.Write([]byte(`{"marketDetails":[{"epic":"CS.D.EURUSD.CFD.IP","updateTime":"16:42:12","updateTimeUTC":"2026-10-21T14:42:12"}]}`))
	}))
	defer server.Close()

	apiKey, err := ig.NewAPIKey("key")
	require.NoError(t, err)
	token, err := ig.NewCertificateToken("cst", "sec", time.Time{})
	require.NoError(t, err)

	session := internalauth.New()
	session.Update(ig.Credentials{APIKey: apiKey, Token: token, Timezone: madrid})

	httpClient := internalhttp.NewClient(server.URL)
	defer func() { _ = httpClient.Close() }()

	client := &marketsClient{http: httpClient, session: session}

	epic, err := ig.NewEpic("CS.D.EURUSD.CFD.IP")
	require.NoError(t, err)

	markets, err := client.GetByEpics(context.Background(), []ig.Epic{epic})
	require.NoError(t, err)
	require.Len(t, markets, 1)

	want := time.Date(2026, time.October, 21, 16, 42, 12, 0, madrid)
	assert.True(t, want.Equal(markets[0].LastUpdated), "got %v, want %v", markets[0].LastUpdated, want)
}

func TestMarketsClient_GetByEpics_BuildsCSVQuery(t *testing.T) {
	t.Parallel()

	var gotQuery string

	client, cleanup := newTestMarketsClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"marketDetails":[]}`))
	}))
	defer cleanup()

	epicA, err := ig.NewEpic("CS.D.EURUSD.CFD.IP")
	require.NoError(t, err)
	epicB, err := ig.NewEpic("CS.D.GBPUSD.CFD.IP")
	require.NoError(t, err)

	_, err = client.GetByEpics(context.Background(), []ig.Epic{epicA, epicB})
	require.NoError(t, err)

	values, err := url.ParseQuery(gotQuery)
	require.NoError(t, err)
	assert.Equal(t, "CS.D.EURUSD.CFD.IP,CS.D.GBPUSD.CFD.IP", values.Get("epics"))
	assert.Equal(t, "ALL", values.Get("filter"))
}
