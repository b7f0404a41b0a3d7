package client

import (
	"context"
	"encoding/json"
	"net/http"

	internalauth "github.com/dehesa/finance-ig-sub001/internal/auth"
	internalhttp "github.com/dehesa/finance-ig-sub001/internal/http"
	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

// applicationsClient is grounded on the teacher's platform-info pair
// (client.GetInfo / client.GetUsageSummary), reworked into the single
// "current application" descriptor §6 asks for.
type applicationsClient struct {
	http    *internalhttp.Client
	session *internalauth.Session
}

func (c *applicationsClient) Current(ctx context.Context) (*ig.Application, error) {
	headers, err := c.session.RequestHeaders()
	if err != nil {
		return nil, err
	}

	call := internalhttp.NewCall[ig.Application](c.http).
		Method(http.MethodGet).
		Path("/operations/application").
		Version(1).
		Accept(http.StatusOK).
		Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
		Decode(func(dc internalhttp.DecodeContext, data []byte) (*ig.Application, error) {
			var out ig.Application
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, err
			}

			return &out, nil
		})

	return call.Execute(ctx)
}
