package client

import (
	"context"
	"encoding/json"
	"net/http"

	internalauth "github.com/dehesa/finance-ig-sub001/internal/auth"
	internalhttp "github.com/dehesa/finance-ig-sub001/internal/http"
	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

type watchlistsClient struct {
	http    *internalhttp.Client
	session *internalauth.Session
}

type watchlistListResponse struct {
	Watchlists []ig.Watchlist `json:"watchlists"`
}

type watchlistGetResponse struct {
	Markets []ig.Market `json:"markets"`
}

func (c *watchlistsClient) headers() (map[ig.HeaderKey]string, error) {
	return c.session.RequestHeaders()
}

func (c *watchlistsClient) List(ctx context.Context) ([]ig.Watchlist, error) {
	headers, err := c.headers()
	if err != nil {
		return nil, err
	}

	call := internalhttp.NewCall[watchlistListResponse](c.http).
		Method(http.MethodGet).
		Path("/watchlists").
		Version(1).
		Accept(http.StatusOK).
		Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
		Decode(func(dc internalhttp.DecodeContext, data []byte) (*watchlistListResponse, error) {
			var out watchlistListResponse
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, err
			}

			return &out, nil
		})

	result, err := call.Execute(ctx)
	if err != nil {
		return nil, err
	}

	return result.Watchlists, nil
}

func (c *watchlistsClient) Get(ctx context.Context, watchlistID string) (*ig.Watchlist, []ig.Market, error) {
	headers, err := c.headers()
	if err != nil {
		return nil, nil, err
	}

	creds, _ := c.session.Credentials()

	call := internalhttp.NewCall[watchlistGetResponse](c.http).
		Method(http.MethodGet).
		Path("/watchlists/"+watchlistID).
		Version(1).
		Accept(http.StatusOK).
		Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
		Extra("timezone", creds.Timezone).
		Decode(func(dc internalhttp.DecodeContext, data []byte) (*watchlistGetResponse, error) {
			var out watchlistGetResponse
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, err
			}

			for i := range out.Markets {
				m := &out.Markets[i]
				m.LastUpdated = localUpdateTime(m.UpdateTime, dc.ServerDate, dc.Location)
			}

			return &out, nil
		})

	result, err := call.Execute(ctx)
	if err != nil {
		return nil, nil, err
	}

	return &ig.Watchlist{ID: watchlistID}, result.Markets, nil
}

type watchlistCreateRequest struct {
	Name  string   `json:"name"`
	Epics []string `json:"epics"`
}

// Create returns a flag indicating whether all requested epics were
// accepted (SUCCESS vs SUCCESS_NOT_ALL_INSTRUMENTS_ADDED), per §4.4.
func (c *watchlistsClient) Create(ctx context.Context, name string, epics []ig.Epic) (*ig.WatchlistCreateResult, error) {
	headers, err := c.headers()
	if err != nil {
		return nil, err
	}

	raws := make([]string, len(epics))
	for i, e := range epics {
		raws[i] = e.String()
	}

	body, err := json.Marshal(watchlistCreateRequest{Name: name, Epics: raws})
	if err != nil {
		return nil, ig.NewInvalidRequest("failed to encode watchlist create request", err)
	}

	call := internalhttp.NewCall[ig.WatchlistCreateResult](c.http).
		Method(http.MethodPost).
		Path("/watchlists").
		Version(1).
		Body(body, "application/json; charset=UTF-8").
		Accept(http.StatusOK).
		Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
		Decode(func(dc internalhttp.DecodeContext, data []byte) (*ig.WatchlistCreateResult, error) {
			var out ig.WatchlistCreateResult
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, err
			}

			return &out, nil
		})

	return call.Execute(ctx)
}

func (c *watchlistsClient) AddEpic(ctx context.Context, watchlistID string, epic ig.Epic) error {
	headers, err := c.headers()
	if err != nil {
		return err
	}

	body, err := json.Marshal(map[string]string{"epic": epic.String()})
	if err != nil {
		return ig.NewInvalidRequest("failed to encode add-epic request", err)
	}

	call := internalhttp.NewCall[struct{}](c.http).
		Method(http.MethodPut).
		Path("/watchlists/"+watchlistID).
		Version(1).
		Body(body, "application/json; charset=UTF-8").
		Accept(http.StatusOK).
		Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
		Decode(func(internalhttp.DecodeContext, []byte) (*struct{}, error) { return &struct{}{}, nil })

	_, err = call.Execute(ctx)

	return err
}

func (c *watchlistsClient) RemoveEpic(ctx context.Context, watchlistID string, epic ig.Epic) error {
	headers, err := c.headers()
	if err != nil {
		return err
	}

	call := internalhttp.NewCall[struct{}](c.http).
		Method(http.MethodDelete).
		Path("/watchlists/"+watchlistID+"/"+epic.String()).
		Version(1).
		Accept(http.StatusOK).
		ExpectBody(false).
		Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
		Decode(func(internalhttp.DecodeContext, []byte) (*struct{}, error) { return &struct{}{}, nil })

	_, err = call.Execute(ctx)

	return err
}

func (c *watchlistsClient) Delete(ctx context.Context, watchlistID string) error {
	headers, err := c.headers()
	if err != nil {
		return err
	}

	call := internalhttp.NewCall[struct{}](c.http).
		Method(http.MethodDelete).
		Path("/watchlists/"+watchlistID).
		Version(1).
		Accept(http.StatusOK).
		ExpectBody(false).
		Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
		Decode(func(internalhttp.DecodeContext, []byte) (*struct{}, error) { return &struct{}{}, nil })

	_, err = call.Execute(ctx)

	return err
}
