package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	internalauth "github.com/dehesa/finance-ig-sub001/internal/auth"
	internalhttp "github.com/dehesa/finance-ig-sub001/internal/http"
	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

type sentimentClient struct {
	http    *internalhttp.Client
	session *internalauth.Session
}

type sentimentBatchResponse struct {
	ClientSentiments []ig.MarketSentiment `json:"clientSentiments"`
}

// Get fetches sentiment for a single market id (not epic), per §4.4.
func (c *sentimentClient) Get(ctx context.Context, marketID ig.MarketID) (*ig.MarketSentiment, error) {
	headers, err := c.session.RequestHeaders()
	if err != nil {
		return nil, err
	}

	call := internalhttp.NewCall[ig.MarketSentiment](c.http).
		Method(http.MethodGet).
		Path("/clientsentiment/"+marketID.String()).
		Version(1).
		Accept(http.StatusOK).
		Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
		Decode(func(dc internalhttp.DecodeContext, data []byte) (*ig.MarketSentiment, error) {
			var out ig.MarketSentiment
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, err
			}

			return &out, nil
		})

	return call.Execute(ctx)
}

// GetBatch fetches sentiment for multiple market ids; marketIds=csv per
// §4.4.
func (c *sentimentClient) GetBatch(ctx context.Context, marketIDs []ig.MarketID) ([]ig.MarketSentiment, error) {
	headers, err := c.session.RequestHeaders()
	if err != nil {
		return nil, err
	}

	raws := make([]string, len(marketIDs))
	for i, m := range marketIDs {
		raws[i] = m.String()
	}

	call := internalhttp.NewCall[sentimentBatchResponse](c.http).
		Method(http.MethodGet).
		Path("/clientsentiment").
		Version(1).
		Query("marketIds", strings.Join(raws, ",")).
		Accept(http.StatusOK).
		Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
		Decode(func(dc internalhttp.DecodeContext, data []byte) (*sentimentBatchResponse, error) {
			var out sentimentBatchResponse
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, err
			}

			return &out, nil
		})

	result, err := call.Execute(ctx)
	if err != nil {
		return nil, err
	}

	return result.ClientSentiments, nil
}
