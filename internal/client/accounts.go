package client

import (
	"context"
	"encoding/json"
	"net/http"

	internalauth "github.com/dehesa/finance-ig-sub001/internal/auth"
	internalhttp "github.com/dehesa/finance-ig-sub001/internal/http"
	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

type accountsClient struct {
	http    *internalhttp.Client
	session *internalauth.Session
}

type accountListResponse struct {
	Accounts []ig.Account `json:"accounts"`
}

func (c *accountsClient) List(ctx context.Context) ([]ig.Account, error) {
	headers, err := c.session.RequestHeaders()
	if err != nil {
		return nil, err
	}

	call := internalhttp.NewCall[accountListResponse](c.http).
		Method(http.MethodGet).
		Path("/accounts").
		Version(1).
		Accept(http.StatusOK).
		Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
		Decode(func(dc internalhttp.DecodeContext, data []byte) (*accountListResponse, error) {
			var out accountListResponse
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, err
			}

			return &out, nil
		})

	result, err := call.Execute(ctx)
	if err != nil {
		return nil, err
	}

	return result.Accounts, nil
}

func (c *accountsClient) Preferences(ctx context.Context) (*ig.AccountPreferences, error) {
	headers, err := c.session.RequestHeaders()
	if err != nil {
		return nil, err
	}

	call := internalhttp.NewCall[ig.AccountPreferences](c.http).
		Method(http.MethodGet).
		Path("/accounts/preferences").
		Version(1).
		Accept(http.StatusOK).
		Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
		Decode(func(dc internalhttp.DecodeContext, data []byte) (*ig.AccountPreferences, error) {
			var out ig.AccountPreferences
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, err
			}

			return &out, nil
		})

	return call.Execute(ctx)
}
