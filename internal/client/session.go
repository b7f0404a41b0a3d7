package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	internalauth "github.com/dehesa/finance-ig-sub001/internal/auth"
	internalhttp "github.com/dehesa/finance-ig-sub001/internal/http"
	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

type sessionClient struct {
	http    *internalhttp.Client
	session *internalauth.Session
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type oauthPayload struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
	TokenType    string `json:"token_type"`
	ExpiresIn    string `json:"expires_in"`
}

type loginResponseBody struct {
	AccountID             string       `json:"accountId"`
	ClientID               string       `json:"clientId"`
	Timezone               int          `json:"timezoneOffset"`
	LightstreamerEndpoint  string       `json:"lightstreamerEndpoint"`
	OAuthToken              *oauthPayload `json:"oauthToken"`
}

// LoginCertificate performs a variant-typed Certificate session login
// (§4.4): no prior credentials are required, and on success a new
// Credentials value is stored, replacing whatever was held before.
func (s *sessionClient) LoginCertificate(ctx context.Context, username, password string) (*ig.LoginResult, error) {
	body, err := json.Marshal(loginRequest{Identifier: username, Password: password})
	if err != nil {
		return nil, ig.NewInvalidRequest("failed to encode login request", err)
	}

	// The certificate tokens travel as response headers (CST,
	// X-SECURITY-TOKEN), not in the body, so this endpoint bypasses Call
	// (whose Decode stage only ever sees the body) and goes through the
	// low-level Do directly.
	return s.loginCertificateRaw(ctx, body)
}

func (s *sessionClient) loginCertificateRaw(ctx context.Context, body []byte) (*ig.LoginResult, error) {
	resp, err := s.http.Post(ctx, "/session", body, map[string]string{
		"Version":      "2",
		"Content-Type": "application/json; charset=UTF-8",
		"Accept":       "application/json",
	})
	if err != nil {
		return nil, ig.NewCallFailed("certificate login failed", nil, nil, nil, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, ig.NewInvalidResponse("certificate login returned an unexpected status", nil, nil, resp.Body, nil).
			WithContext("expected", http.StatusOK).WithContext("received", resp.StatusCode)
	}

	cst := resp.Headers.Get("CST")
	security := resp.Headers.Get("X-SECURITY-TOKEN")

	token, err := ig.NewCertificateToken(cst, security, time.Time{})
	if err != nil {
		return nil, ig.NewInvalidResponse("certificate login response missing token headers", nil, nil, resp.Body, err)
	}

	var out loginResponseBody
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, ig.NewInvalidResponse("failed to decode certificate login body", nil, nil, resp.Body, err)
	}

	return s.finishLogin(out, token)
}

// LoginOAuth performs a variant-typed OAuth session login (§4.4).
func (s *sessionClient) LoginOAuth(ctx context.Context, username, password string) (*ig.LoginResult, error) {
	body, err := json.Marshal(loginRequest{Identifier: username, Password: password})
	if err != nil {
		return nil, ig.NewInvalidRequest("failed to encode login request", err)
	}

	resp, err := s.http.Post(ctx, "/session", body, map[string]string{
		"Version":      "3",
		"Content-Type": "application/json; charset=UTF-8",
		"Accept":       "application/json",
	})
	if err != nil {
		return nil, ig.NewCallFailed("oauth login failed", nil, nil, nil, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, ig.NewInvalidResponse("oauth login returned an unexpected status", nil, nil, resp.Body, nil).
			WithContext("expected", http.StatusOK).WithContext("received", resp.StatusCode)
	}

	var out loginResponseBody
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, ig.NewInvalidResponse("failed to decode oauth login body", nil, nil, resp.Body, err)
	}

	if out.OAuthToken == nil {
		return nil, ig.NewInvalidResponse("oauth login response missing oauthToken", nil, nil, resp.Body, nil)
	}

	expiresIn, _ := time.ParseDuration(out.OAuthToken.ExpiresIn + "s")

	token, err := ig.NewOAuthToken(
		out.OAuthToken.AccessToken,
		out.OAuthToken.RefreshToken,
		out.OAuthToken.Scope,
		out.OAuthToken.TokenType,
		time.Now().Add(expiresIn),
	)
	if err != nil {
		return nil, ig.NewInvalidResponse("malformed oauth token in login response", nil, nil, resp.Body, err)
	}

	return s.finishLogin(out, token)
}

func (s *sessionClient) finishLogin(body loginResponseBody, token ig.Token) (*ig.LoginResult, error) {
	accountID, err := ig.NewAccountID(body.AccountID)
	if err != nil {
		return nil, ig.NewInvalidResponse("login response carried an invalid account id", nil, nil, nil, err)
	}

	clientID, err := ig.NewClientID(body.ClientID)
	if err != nil {
		return nil, ig.NewInvalidResponse("login response carried an invalid client id", nil, nil, nil, err)
	}

	location := time.FixedZone(fmt.Sprintf("UTC%+d", body.Timezone), body.Timezone*3600)

	creds := ig.Credentials{
		ClientID:    clientID,
		AccountID:   accountID,
		Token:       token,
		StreamerURL: body.LightstreamerEndpoint,
		Timezone:    location,
	}

	s.session.Update(creds)

	return &ig.LoginResult{
		AccountID:             body.AccountID,
		ClientID:              body.ClientID,
		Timezone:              location,
		LightstreamerEndpoint: body.LightstreamerEndpoint,
		Token:                 token,
	}, nil
}

// Logout completes successfully without contacting the server when no
// credentials are held; otherwise it issues the delete and, on success,
// clears credentials (§4.4).
func (s *sessionClient) Logout(ctx context.Context) error {
	if !s.session.HasCredentials() {
		return nil
	}

	headers, err := s.session.RequestHeaders()
	if err != nil {
		return err
	}

	call := internalhttp.NewCall[struct{}](s.http).
		Method(http.MethodDelete).
		Path("/session").
		Version(1).
		Accept(http.StatusNoContent).
		ExpectBody(false).
		Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
		Decode(func(internalhttp.DecodeContext, []byte) (*struct{}, error) { return &struct{}{}, nil })

	if _, err := call.Execute(ctx); err != nil {
		return err
	}

	s.session.Remove()

	return nil
}

// Switch requires a non-empty target account id and mutates
// Credentials.AccountID on success (§4.4).
func (s *sessionClient) Switch(ctx context.Context, accountID string) (*ig.SwitchResult, error) {
	return s.session.Switch(ctx, accountID, func(ctx context.Context, accountID string) (*ig.SwitchResult, error) {
		headers, err := s.session.RequestHeaders()
		if err != nil {
			return nil, err
		}

		body, err := json.Marshal(map[string]interface{}{"accountId": accountID, "defaultAccount": true})
		if err != nil {
			return nil, ig.NewInvalidRequest("failed to encode switch request", err)
		}

		call := internalhttp.NewCall[ig.SwitchResult](s.http).
			Method(http.MethodPut).
			Path("/session").
			Version(1).
			Body(body, "application/json; charset=UTF-8").
			Accept(http.StatusOK).
			Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
			Decode(func(dc internalhttp.DecodeContext, data []byte) (*ig.SwitchResult, error) {
				var out ig.SwitchResult
				if err := json.Unmarshal(data, &out); err != nil {
					return nil, err
				}

				return &out, nil
			})

		return call.Execute(ctx)
	})
}
