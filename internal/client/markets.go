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

type marketsClient struct {
	http    *internalhttp.Client
	session *internalauth.Session
}

type marketsByEpicsResponse struct {
	MarketDetails []ig.Market `json:"marketDetails"`
}

// GetByEpics requires 1..50 unique epics (§4.4); query item epics=csv,
// filter=ALL; the decoder is keyed to the account's timezone via
// DecodeContext.
func (c *marketsClient) GetByEpics(ctx context.Context, epics []ig.Epic) ([]ig.Market, error) {
	headers, err := c.session.RequestHeaders()
	if err != nil {
		return nil, err
	}

	creds, _ := c.session.Credentials()

	call := internalhttp.NewCall[marketsByEpicsResponse](c.http).
		Method(http.MethodGet).
		Path("/markets").
		Version(2).
		Accept(http.StatusOK).
		Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
		Validate(func(ctx context.Context) error {
			return validateEpics(epics)
		}).
		Decode(func(dc internalhttp.DecodeContext, data []byte) (*marketsByEpicsResponse, error) {
			var out marketsByEpicsResponse
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, err
			}

			for i := range out.MarketDetails {
				m := &out.MarketDetails[i]
				m.LastUpdated = localUpdateTime(m.UpdateTime, dc.ServerDate, dc.Location)
			}

			return &out, nil
		})

	if len(epics) > 0 {
		raws := make([]string, len(epics))
		for i, e := range epics {
			raws[i] = e.String()
		}

		q := ig.NewQueryParams().WithCSVFilter("epics", raws)
		call.QueryValues(q.ToValues())
	}

	call.Query("filter", "ALL")
	call.Extra("timezone", creds.Timezone)

	result, err := call.Execute(ctx)
	if err != nil {
		return nil, err
	}

	return result.MarketDetails, nil
}

// localUpdateTime pairs a market's bare "HH:mm:ss" update time with the
// account's timezone and the response's server date, producing the
// instant it actually refers to. It returns the zero time if rawTime is
// empty, loc is unset (no account timezone propagated via
// Call.Extra), or serverDate is unset (no parseable Date header) — any
// of those leaves the bare time-of-day unanchored.
func localUpdateTime(rawTime string, serverDate time.Time, loc *time.Location) time.Time {
	if rawTime == "" || loc == nil || serverDate.IsZero() {
		return time.Time{}
	}

	clock, err := time.ParseInLocation("15:04:05", rawTime, loc)
	if err != nil {
		return time.Time{}
	}

	year, month, day := serverDate.In(loc).Date()

	return time.Date(year, month, day, clock.Hour(), clock.Minute(), clock.Second(), 0, loc)
}

func validateEpics(epics []ig.Epic) error {
	if len(epics) == 0 {
		return ig.NewInvalidRequest("you must pass at least 1 epic", nil)
	}

	if len(epics) > 50 {
		return ig.NewInvalidRequest("You cannot pass more than 50 epics", nil)
	}

	seen := make(map[string]struct{}, len(epics))

	for _, e := range epics {
		raw := e.String()
		if _, ok := seen[raw]; ok {
			return ig.NewInvalidRequest(fmt.Sprintf("duplicate epic %q", raw), nil)
		}

		seen[raw] = struct{}{}
	}

	return nil
}
