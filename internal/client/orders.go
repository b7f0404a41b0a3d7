package client

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	internalauth "github.com/dehesa/finance-ig-sub001/internal/auth"
	internalhttp "github.com/dehesa/finance-ig-sub001/internal/http"
	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

type workingOrdersClient struct {
	http    *internalhttp.Client
	session *internalauth.Session
}

type workingOrderListResponse struct {
	WorkingOrders []workingOrderEnvelope `json:"workingOrders"`
}

type workingOrderEnvelope struct {
	WorkingOrderData ig.WorkingOrder `json:"workingOrderData"`
}

func (c *workingOrdersClient) headers() (map[ig.HeaderKey]string, error) {
	return c.session.RequestHeaders()
}

func (c *workingOrdersClient) List(ctx context.Context) ([]ig.WorkingOrder, error) {
	headers, err := c.headers()
	if err != nil {
		return nil, err
	}

	call := internalhttp.NewCall[workingOrderListResponse](c.http).
		Method(http.MethodGet).
		Path("/workingorders").
		Version(2).
		Accept(http.StatusOK).
		Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
		Decode(func(dc internalhttp.DecodeContext, data []byte) (*workingOrderListResponse, error) {
			var out workingOrderListResponse
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, err
			}

			return &out, nil
		})

	result, err := call.Execute(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]ig.WorkingOrder, len(result.WorkingOrders))
	for i, o := range result.WorkingOrders {
		orders[i] = o.WorkingOrderData
	}

	return orders, nil
}

type createWorkingOrderPayload struct {
	Epic          string     `json:"epic"`
	Direction     string     `json:"direction"`
	Size          float64    `json:"size"`
	Level         float64    `json:"level"`
	Type          string     `json:"type"`
	TimeInForce   string     `json:"timeInForce"`
	GoodTillDate  *time.Time `json:"goodTillDate,omitempty"`
	DealReference string     `json:"dealReference,omitempty"`
}

func (c *workingOrdersClient) Create(ctx context.Context, req ig.CreateWorkingOrderRequest) (*ig.DealConfirmation, error) {
	if req.Expiry == ig.WorkingOrderExpiryGoodTillDate && req.GoodTillDate == nil {
		return nil, ig.NewInvalidRequest("GOOD_TILL_DATE expiry requires a date", nil)
	}

	headers, err := c.headers()
	if err != nil {
		return nil, err
	}

	payload := createWorkingOrderPayload{
		Epic:         req.Epic.String(),
		Direction:    req.Direction.String(),
		Size:         req.Size,
		Level:        req.Level,
		Type:         req.OrderType,
		TimeInForce:  req.Expiry.String(),
		GoodTillDate: req.GoodTillDate,
	}

	if req.DealReference != nil {
		payload.DealReference = req.DealReference.String()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, ig.NewInvalidRequest("failed to encode working order create request", err)
	}

	call := internalhttp.NewCall[ig.DealConfirmation](c.http).
		Method(http.MethodPost).
		Path("/workingorders/otc").
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

type updateWorkingOrderPayload struct {
	Level        float64    `json:"level"`
	TimeInForce  string     `json:"timeInForce"`
	GoodTillDate *time.Time `json:"goodTillDate,omitempty"`
}

func (c *workingOrdersClient) Update(ctx context.Context, dealID ig.DealID, req ig.UpdateWorkingOrderRequest) (*ig.DealConfirmation, error) {
	headers, err := c.headers()
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(updateWorkingOrderPayload{
		Level:        req.Level,
		TimeInForce:  req.Expiry.String(),
		GoodTillDate: req.GoodTillDate,
	})
	if err != nil {
		return nil, ig.NewInvalidRequest("failed to encode working order update request", err)
	}

	call := internalhttp.NewCall[ig.DealConfirmation](c.http).
		Method(http.MethodPut).
		Path("/workingorders/otc/"+dealID.String()).
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

func (c *workingOrdersClient) Delete(ctx context.Context, dealID ig.DealID) (*ig.DealConfirmation, error) {
	headers, err := c.headers()
	if err != nil {
		return nil, err
	}

	call := internalhttp.NewCall[ig.DealConfirmation](c.http).
		Method(http.MethodPost).
		Path("/workingorders/otc/"+dealID.String()).
		Version(2).
		Header("_method", http.MethodDelete).
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
