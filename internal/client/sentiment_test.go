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

func newTestSentimentClient(t *testing.T, handler http.Handler) (*sentimentClient, func()) {
	t.Helper()

	server := httptest.NewServer(handler)

	apiKey, err := ig.NewAPIKey("key")
	require.NoError(t, err)

	token, err := ig.NewCertificateToken("cst", "sec", time.Time{})
	require.NoError(t, err)

	session := internalauth.New()
	session.Update(ig.Credentials{APIKey: apiKey, Token: token})

	httpClient := internalhttp.NewClient(server.URL)

	return &sentimentClient{http: httpClient, session: session}, func() {
		_ = httpClient.Close()
		server.Close()
	}
}

func TestSentimentClient_Get_SingleMarket(t *testing.T) {
	t.Parallel()

	var gotPath string

	client, cleanup := newTestSentimentClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"marketId":"IX.D.FTSE.DAILY.IP","longPositionPercentage":60.5,"shortPositionPercentage":39.5}`))
	}))
	defer cleanup()

	marketID, err := ig.NewMarketID("IX.D.FTSE.DAILY.IP")
	require.NoError(t, err)

	sentiment, err := client.Get(context.Background(), marketID)
	require.NoError(t, err)
	assert.Equal(t, "/clientsentiment/IX.D.FTSE.DAILY.IP", gotPath)
	assert.InDelta(t, 60.5, sentiment.LongPositionPercentage, 0.001)
}

func TestSentimentClient_GetBatch_JoinsMarketIDsAsCSV(t *testing.T) {
	t.Parallel()

	var gotQuery string

	client, cleanup := newTestSentimentClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"clientSentiments":[{"marketId":"A"},{"marketId":"B"}]}`))
	}))
	defer cleanup()

	a, err := ig.NewMarketID("A")
	require.NoError(t, err)
	b, err := ig.NewMarketID("B")
	require.NoError(t, err)

	results, err := client.GetBatch(context.Background(), []ig.MarketID{a, b})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "marketIds=A%2CB", gotQuery)
}
