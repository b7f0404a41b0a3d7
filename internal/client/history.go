package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	internalauth "github.com/dehesa/finance-ig-sub001/internal/auth"
	internalhttp "github.com/dehesa/finance-ig-sub001/internal/http"
	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

// historyClient is the pagination combinator's second concrete consumer
// (page-number style, as opposed to nodes' link-cursor-free recursion);
// it gives ig.Paginate a page-number-cursor Meta type to exercise.
type historyClient struct {
	http    *internalhttp.Client
	session *internalauth.Session
}

type transactionPageMeta struct {
	page       int
	totalPages int
}

type transactionListResponse struct {
	Transactions []ig.Transaction `json:"transactions"`
	Metadata     struct {
		PageData struct {
			PageSize   int `json:"pageSize"`
			PageNumber int `json:"pageNumber"`
			TotalPages int `json:"totalPages"`
		} `json:"pageData"`
	} `json:"metadata"`
}

func (c *historyClient) Transactions(ctx context.Context, from, to time.Time) *ig.PageStream[ig.Transaction] {
	headers, headerErr := c.session.RequestHeaders()

	next := func(ctx context.Context, previous *ig.PageContext[transactionPageMeta]) (*http.Request, error) {
		if headerErr != nil {
			return nil, headerErr
		}

		page := 1
		if previous != nil {
			if previous.Meta.totalPages > 0 && previous.Meta.page >= previous.Meta.totalPages {
				return nil, nil
			}

			page = previous.Meta.page + 1
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/history/transactions", nil)
		if err != nil {
			return nil, ig.NewInvalidRequest("failed to build transactions request", err)
		}

		q := req.URL.Query()
		q.Set("from", from.UTC().Format(time.RFC3339))
		q.Set("to", to.UTC().Format(time.RFC3339))
		q.Set("pageNumber", strconv.Itoa(page))
		req.URL.RawQuery = q.Encode()

		for key, value := range headers {
			req.Header.Set(string(key), value)
		}

		return req, nil
	}

	endpoint := func(ctx context.Context, req *http.Request) (transactionPageMeta, []ig.Transaction, error) {
		call := internalhttp.NewCall[transactionListResponse](c.http).
			Method(req.Method).
			Path(req.URL.Path).
			Version(2).
			Accept(http.StatusOK).
			Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
			Decode(func(dc internalhttp.DecodeContext, data []byte) (*transactionListResponse, error) {
				var out transactionListResponse
				if err := json.Unmarshal(data, &out); err != nil {
					return nil, err
				}

				return &out, nil
			})
		call.QueryValues(req.URL.Query())

		result, err := call.Execute(ctx)
		if err != nil {
			return transactionPageMeta{}, nil, err
		}

		meta := transactionPageMeta{
			page:       result.Metadata.PageData.PageNumber,
			totalPages: result.Metadata.PageData.TotalPages,
		}

		return meta, result.Transactions, nil
	}

	return ig.Paginate(ctx, next, endpoint)
}

type activityListResponse struct {
	Activities []ig.HistoryActivity `json:"activities"`
}

func (c *historyClient) Activity(ctx context.Context, from, to time.Time) *ig.PageStream[ig.HistoryActivity] {
	headers, headerErr := c.session.RequestHeaders()
	fetched := false

	next := func(ctx context.Context, previous *ig.PageContext[struct{}]) (*http.Request, error) {
		if headerErr != nil {
			return nil, headerErr
		}

		if fetched {
			return nil, nil
		}

		fetched = true

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/history/activity", nil)
		if err != nil {
			return nil, ig.NewInvalidRequest("failed to build activity request", err)
		}

		q := req.URL.Query()
		q.Set("from", from.UTC().Format(time.RFC3339))
		q.Set("to", to.UTC().Format(time.RFC3339))
		req.URL.RawQuery = q.Encode()

		for key, value := range headers {
			req.Header.Set(string(key), value)
		}

		return req, nil
	}

	endpoint := func(ctx context.Context, req *http.Request) (struct{}, []ig.HistoryActivity, error) {
		call := internalhttp.NewCall[activityListResponse](c.http).
			Method(req.Method).
			Path(req.URL.Path).
			Version(3).
			Accept(http.StatusOK).
			Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
			Decode(func(dc internalhttp.DecodeContext, data []byte) (*activityListResponse, error) {
				var out activityListResponse
				if err := json.Unmarshal(data, &out); err != nil {
					return nil, err
				}

				return &out, nil
			})
		call.QueryValues(req.URL.Query())

		result, err := call.Execute(ctx)
		if err != nil {
			return struct{}{}, nil, err
		}

		return struct{}{}, result.Activities, nil
	}

	return ig.Paginate(ctx, next, endpoint)
}
