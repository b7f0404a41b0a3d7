package client

import (
	"context"
	"encoding/json"
	"net/http"

	internalauth "github.com/dehesa/finance-ig-sub001/internal/auth"
	internalhttp "github.com/dehesa/finance-ig-sub001/internal/http"
	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

// positionsClient is grounded on the teacher's apps.go Create/Get/
// List/Delete quartet.
type positionsClient struct {
	http    *internalhttp.Client
	session *internalauth.Session
}

type positionListResponse struct {
	Positions []positionEnvelope `json:"positions"`
}

type positionEnvelope struct {
	Position ig.Position `json:"position"`
}

func (c *positionsClient) headers() (map[ig.HeaderKey]string, error) {
	return c.session.RequestHeaders()
}

func (c *positionsClient) List(ctx context.Context) ([]ig.Position, error) {
	headers, err := c.headers()
	if err != nil {
		return nil, err
	}

	call := internalhttp.NewCall[positionListResponse](c.http).
		Method(http.MethodGet).
		Path("/positions").
		Version(2).
		Accept(http.StatusOK).
		Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
		Decode(func(dc internalhttp.DecodeContext, data []byte) (*positionListResponse, error) {
			var out positionListResponse
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, err
			}

			return &out, nil
		})

	result, err := call.Execute(ctx)
	if err != nil {
		return nil, err
	}

	positions := make([]ig.Position, len(result.Positions))
	for i, p := range result.Positions {
		positions[i] = p.Position
	}

	return positions, nil
}

func (c *positionsClient) Get(ctx context.Context, dealID ig.DealID) (*ig.Position, error) {
	headers, err := c.headers()
	if err != nil {
		return nil, err
	}

	call := internalhttp.NewCall[positionEnvelope](c.http).
		Method(http.MethodGet).
		Path("/positions/"+dealID.String()).
		Version(2).
		Accept(http.StatusOK).
		Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
		Decode(func(dc internalhttp.DecodeContext, data []byte) (*positionEnvelope, error) {
			var out positionEnvelope
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, err
			}

			return &out, nil
		})

	result, err := call.Execute(ctx)
	if err != nil {
		return nil, err
	}

	return &result.Position, nil
}

type openPositionPayload struct {
	Epic           string   `json:"epic"`
	Direction      string   `json:"direction"`
	Size           float64  `json:"size"`
	OrderType      string   `json:"orderType"`
	Level          *float64 `json:"level,omitempty"`
	CurrencyCode   string   `json:"currencyCode"`
	ForceOpen      bool     `json:"forceOpen"`
	GuaranteedStop bool     `json:"guaranteedStop"`
	DealReference  string   `json:"dealReference,omitempty"`
}

func (c *positionsClient) Open(ctx context.Context, req ig.OpenPositionRequest) (*ig.DealConfirmation, error) {
	headers, err := c.headers()
	if err != nil {
		return nil, err
	}

	payload := openPositionPayload{
		Epic:           req.Epic.String(),
		Direction:      req.Direction.String(),
		Size:           req.Size,
		OrderType:      req.OrderType,
		Level:          req.Level,
		CurrencyCode:   req.CurrencyCode.String(),
		ForceOpen:      req.ForceOpen,
		GuaranteedStop: req.GuaranteedStop,
	}

	if req.DealReference != nil {
		payload.DealReference = req.DealReference.String()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, ig.NewInvalidRequest("failed to encode open-position request", err)
	}

	call := internalhttp.NewCall[ig.DealConfirmation](c.http).
		Method(http.MethodPost).
		Path("/positions/otc").
		Version(2).
		Body(body, "application/json; charset=UTF-8").
		Accept(http.StatusOK).
		Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
		Decode(func(dc internalhttp.DecodeContext, data []byte) (*ig.DealConfirmation, error) {
			var out ig.DealConfirmation
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, err
			}

			return &out, nil
		})

	return call.Execute(ctx)
}

type closePositionPayload struct {
	DealID    string  `json:"dealId"`
	Direction string  `json:"direction"`
	Size      float64 `json:"size"`
	OrderType string  `json:"orderType"`
}

func (c *positionsClient) Close(ctx context.Context, req ig.ClosePositionRequest) (*ig.DealConfirmation, error) {
	headers, err := c.headers()
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(closePositionPayload{
		DealID:    req.DealID.String(),
		Direction: req.Direction.String(),
		Size:      req.Size,
		OrderType: req.OrderType,
	})
	if err != nil {
		return nil, ig.NewInvalidRequest("failed to encode close-position request", err)
	}

	call := internalhttp.NewCall[ig.DealConfirmation](c.http).
		Method(http.MethodPost).
		Path("/positions/otc").
		Version(1).
		Header("_method", http.MethodDelete).
		Body(body, "application/json; charset=UTF-8").
		Accept(http.StatusOK).
		Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
		Decode(func(dc internalhttp.DecodeContext, data []byte) (*ig.DealConfirmation, error) {
			var out ig.DealConfirmation
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, err
			}

			return &out, nil
		})

	return call.Execute(ctx)
}
