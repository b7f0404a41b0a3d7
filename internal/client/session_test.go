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

func newTestSessionClient(t *testing.T, handler http.Handler) (*sessionClient, *internalhttp.Client, func()) {
	t.Helper()

	server := httptest.NewServer(handler)
	httpClient := internalhttp.NewClient(server.URL)
	session := internalauth.New()

	return &sessionClient{http: httpClient, session: session}, httpClient, func() {
		_ = httpClient.Close()
		server.Close()
	}
}

func TestSessionClient_LoginCertificate_ExtractsHeaderTokens(t *testing.T) {
	t.Parallel()

	client, _, cleanup := newTestSessionClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("CST", "cst-value")
		w.Header().Set("X-SECURITY-TOKEN", "sec-value")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accountId":"ACC1","clientId":"123456789","timezoneOffset":0,"lightstreamerEndpoint":"https://stream.ig.com"}`))
	}))
	defer cleanup()

	result, err := client.LoginCertificate(context.Background(), "user", "pass")
	require.NoError(t, err)
	assert.Equal(t, "ACC1", result.AccountID)
	assert.True(t, client.session.HasCredentials())

	creds, err := client.session.Credentials()
	require.NoError(t, err)
	assert.True(t, creds.Token.Kind() == ig.TokenKindCertificate)
}

func TestSessionClient_LoginOAuth_BuildsOAuthToken(t *testing.T) {
	t.Parallel()

	client, _, cleanup := newTestSessionClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accountId":"ACC1","clientId":"123456789","timezoneOffset":0,"oauthToken":{"access_token":"acc","refresh_token":"ref","scope":"profile","token_type":"Bearer","expires_in":"60"}}`))
	}))
	defer cleanup()

	result, err := client.LoginOAuth(context.Background(), "user", "pass")
	require.NoError(t, err)
	assert.Equal(t, "ACC1", result.AccountID)

	creds, err := client.session.Credentials()
	require.NoError(t, err)
	assert.True(t, creds.Token.Kind() == ig.TokenKindOAuth)
}

func TestSessionClient_Logout_NoOpWithoutCredentials(t *testing.T) {
	t.Parallel()

	client, _, cleanup := newTestSessionClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("server should not be contacted when no credentials are held")
	}))
	defer cleanup()

	err := client.Logout(context.Background())
	require.NoError(t, err)
}

func TestSessionClient_Logout_ClearsCredentialsOnSuccess(t *testing.T) {
	t.Parallel()

	client, _, cleanup := newTestSessionClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer cleanup()

	apiKey, err := ig.NewAPIKey("key")
	require.NoError(t, err)
	token, err := ig.NewCertificateToken("cst", "sec", time.Time{})
	require.NoError(t, err)
	client.session.Update(ig.Credentials{APIKey: apiKey, Token: token})

	err = client.Logout(context.Background())
	require.NoError(t, err)
	assert.False(t, client.session.HasCredentials())
}

func TestSessionClient_Switch_IssuesAccountSwitchRequest(t *testing.T) {
	t.Parallel()

	var gotBody string

	client, _, cleanup := newTestSessionClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(buf)
		gotBody = string(buf)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"trailingStopsEnabled":true}`))
	}))
	defer cleanup()

	apiKey, err := ig.NewAPIKey("key")
	require.NoError(t, err)
	accountID, err := ig.NewAccountID("ACC1")
	require.NoError(t, err)
	token, err := ig.NewCertificateToken("cst", "sec", time.Time{})
	require.NoError(t, err)
	client.session.Update(ig.Credentials{APIKey: apiKey, AccountID: accountID, Token: token})

	result, err := client.Switch(context.Background(), "ACC2")
	require.NoError(t, err)
	assert.True(t, result.TrailingStopsEnabled)
	assert.Contains(t, gotBody, "ACC2")

	creds, err := client.session.Credentials()
	require.NoError(t, err)
	assert.Equal(t, "ACC2", creds.AccountID.String())
}
