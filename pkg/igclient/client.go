// Package igclient is the public entry point for creating IG Markets API
// clients: a thin wrapper that resolves a Config into a logged-in (or
// ready-to-log-in) ig.Client, mirroring the teacher's pkg/cfclient.
package igclient

import (
	"context"
	"strings"
	"time"

	internalclient "github.com/dehesa/finance-ig-sub001/internal/client"
	internalhttp "github.com/dehesa/finance-ig-sub001/internal/http"
	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

const defaultRootURL = "https://api.ig.com/gateway/deal"

// New resolves config into an ig.Client. Which login variant runs (none,
// certificate, or a token already in hand) is decided purely by which
// fields of config are populated, per ig.Config's doc comment.
func New(ctx context.Context, config *ig.Config) (ig.Client, error) {
	if config == nil {
		return nil, ig.NewInvalidRequest("config cannot be nil", nil)
	}

	if config.APIKey == "" {
		return nil, ig.NewInvalidRequest("APIKey is required", nil)
	}

	rootURL := strings.TrimSuffix(config.RootURL, "/")
	if rootURL == "" {
		rootURL = defaultRootURL
	}

	opts := []internalhttp.Option{
		internalhttp.WithUserAgent(userAgent(config.UserAgent)),
	}

	if config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, internalhttp.WithDebug(true))
	}

	if config.Timeout > 0 {
		opts = append(opts, internalhttp.WithTimeout(config.Timeout))
	}

	if config.RetryMax > 0 {
		opts = append(opts, internalhttp.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	httpClient := internalhttp.NewClient(rootURL, opts...)
	client := internalclient.New(httpClient)

	switch {
	case config.CST != "" && config.SecurityToken != "":
		token, err := ig.NewCertificateToken(config.CST, config.SecurityToken, time.Time{})
		if err != nil {
			return nil, err
		}

		if err := adoptToken(client, config, token); err != nil {
			return nil, err
		}
	case config.AccessToken != "" && config.RefreshToken != "":
		token, err := ig.NewOAuthToken(config.AccessToken, config.RefreshToken, "", "Bearer", time.Time{})
		if err != nil {
			return nil, err
		}

		if err := adoptToken(client, config, token); err != nil {
			return nil, err
		}
	case config.Username != "" && config.Password != "":
		if _, err := client.Session().LoginCertificate(ctx, config.Username, config.Password); err != nil {
			return nil, err
		}
	}

	return client, nil
}

func userAgent(configured string) string {
	if configured != "" {
		return configured
	}

	return "finance-ig-sub001/1.0"
}

func adoptToken(client *internalclient.Client, config *ig.Config, token ig.Token) error {
	accountID, err := ig.NewAccountID(config.AccountID)
	if err != nil {
		return err
	}

	apiKey, err := ig.NewAPIKey(config.APIKey)
	if err != nil {
		return err
	}

	client.AdoptCredentials(ig.Credentials{
		AccountID: accountID,
		APIKey:    apiKey,
		Token:     token,
	})

	return nil
}

// NewWithAccessToken is a convenience constructor for the common
// OAuth-token-in-hand case (e.g. a token minted by a separate login flow
// and persisted by the caller).
func NewWithAccessToken(ctx context.Context, apiKey, accountID, accessToken, refreshToken string) (ig.Client, error) {
	return New(ctx, &ig.Config{
		APIKey:       apiKey,
		AccountID:    accountID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// NewWithCertificateToken is a convenience constructor for a caller that
// already holds a CST/X-SECURITY-TOKEN pair.
func NewWithCertificateToken(ctx context.Context, apiKey, accountID, cst, securityToken string) (ig.Client, error) {
	return New(ctx, &ig.Config{
		APIKey:        apiKey,
		AccountID:     accountID,
		CST:           cst,
		SecurityToken: securityToken,
	})
}
