package http

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

// DecodeContext is the decoder side-channel: extrinsic information the
// pipeline gathers during Send/StatusCheck that a decoder may need but
// that isn't part of the response body itself (§4.2's "decoder
// user-info").
type DecodeContext struct {
	ResponseHeader http.Header
	ServerDate     time.Time
	Location       *time.Location
	Extra          map[string]interface{}
}

// DecoderFunc decodes body into a *T, consulting dc for any extrinsic
// context it needs (account timezone, server date, endpoint-specific
// identifiers propagated via DecodeContext.Extra).
type DecoderFunc[T any] func(dc DecodeContext, body []byte) (*T, error)

// HeaderFunc supplies the credential headers for a Call that requires
// them. It is called lazily, only once Build determines credentials are
// requested.
type HeaderFunc func() (map[ig.HeaderKey]string, error)

// ValidatorFunc runs the caller-supplied validation stage. A non-domain
// error (anything not already an *ig.Error) is wrapped into
// ErrorKindInvalidRequest by the pipeline.
type ValidatorFunc func(ctx context.Context) error

// Call builds and executes one staged endpoint invocation: Bind,
// Validate, Build, Send, StatusCheck, LadenDataCheck, Decode, in that
// order, stopping at the first failure.
type Call[T any] struct {
	client *Client

	validate ValidatorFunc

	method  string
	path    string
	query   url.Values
	version int

	requireCredentials bool
	headerFn           HeaderFunc
	extraHeaders       map[string]string

	body        []byte
	contentType string

	acceptedStatus []int
	expectBody     bool

	decode DecoderFunc[T]
	extra  map[string]interface{}
}

// NewCall starts building a Call against client.
func NewCall[T any](client *Client) *Call[T] {
	return &Call[T]{
		client:         client,
		query:          url.Values{},
		acceptedStatus: []int{http.StatusOK},
		expectBody:     true,
		extra:          map[string]interface{}{},
	}
}

func (c *Call[T]) Validate(fn ValidatorFunc) *Call[T] { c.validate = fn; return c }
func (c *Call[T]) Method(method string) *Call[T]      { c.method = method; return c }
func (c *Call[T]) Path(path string) *Call[T]          { c.path = path; return c }
func (c *Call[T]) Version(version int) *Call[T]       { c.version = version; return c }

func (c *Call[T]) Query(key, value string) *Call[T] {
	c.query.Add(key, value)

	return c
}

func (c *Call[T]) QueryValues(values url.Values) *Call[T] {
	for key, list := range values {
		for _, v := range list {
			c.query.Add(key, v)
		}
	}

	return c
}

// Credentials marks this call as requiring credential headers, supplied
// lazily by fn at Build time.
func (c *Call[T]) Credentials(fn HeaderFunc) *Call[T] {
	c.requireCredentials = true
	c.headerFn = fn

	return c
}

func (c *Call[T]) Header(key, value string) *Call[T] {
	if c.extraHeaders == nil {
		c.extraHeaders = map[string]string{}
	}

	c.extraHeaders[key] = value

	return c
}

func (c *Call[T]) Body(body []byte, contentType string) *Call[T] {
	c.body = body
	c.contentType = contentType

	return c
}

func (c *Call[T]) Accept(status ...int) *Call[T] {
	c.acceptedStatus = status

	return c
}

// ExpectBody controls whether the Laden-data-check stage requires a
// non-empty body (true, the default) or permits an empty one (false,
// e.g. logout's 204).
func (c *Call[T]) ExpectBody(expect bool) *Call[T] {
	c.expectBody = expect

	return c
}

func (c *Call[T]) Decode(fn DecoderFunc[T]) *Call[T] {
	c.decode = fn

	return c
}

func (c *Call[T]) Extra(key string, value interface{}) *Call[T] {
	c.extra[key] = value

	return c
}

// Execute drives the call through every stage and returns the decoded
// result, or the first stage's Error.
func (c *Call[T]) Execute(ctx context.Context) (*T, error) {
	// 1. Bind.
	if c.client.Closed() {
		return nil, ig.NewSessionExpired("the API instance has been closed")
	}

	select {
	case <-c.client.Done():
		return nil, ig.NewSessionExpired("the API instance has been closed")
	default:
	}

	// 2. Validate.
	if c.validate != nil {
		if err := c.validate(ctx); err != nil {
			var igErr *ig.Error
			if as, ok := err.(*ig.Error); ok {
				igErr = as
			} else {
				igErr = ig.NewInvalidRequest(err.Error(), err)
			}

			return nil, igErr
		}
	}

	// 3. Build.
	headers := map[string]string{
		string(ig.HeaderAccept): "application/json",
	}

	if c.version > 0 {
		headers[string(ig.HeaderVersion)] = strconv.Itoa(c.version)
	}

	for key, value := range c.extraHeaders {
		headers[key] = value
	}

	if c.requireCredentials {
		if c.headerFn == nil {
			return nil, ig.NewInvalidRequest("no credentials available for a request requiring them", nil)
		}

		credHeaders, err := c.headerFn()
		if err != nil {
			return nil, wrapAsInvalidRequest(err)
		}

		for key, value := range credHeaders {
			headers[string(key)] = value
		}
	}

	if c.body != nil {
		if c.contentType != "" {
			headers[string(ig.HeaderContentType)] = c.contentType
		}
	}

	req := &Request{
		Method:  c.method,
		Path:    c.path,
		Query:   map[string][]string(c.query),
		Headers: headers,
		Body:    c.body,
	}

	httpReqForError, _ := toHTTPRequest(c.client.baseURL, req)

	// 4. Send.
	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, ig.NewCallFailed("the HTTP exchange failed", httpReqForError, nil, nil, err)
	}

	httpResp := toHTTPResponse(resp)

	// 5. Status check.
	if !containsStatus(c.acceptedStatus, resp.StatusCode) {
		return nil, ig.NewInvalidResponse(
			"unexpected response status code",
			httpReqForError, httpResp, resp.Body, nil,
		).WithContext("expected", c.acceptedStatus).WithContext("received", resp.StatusCode)
	}

	// 6. Laden-data check.
	if c.expectBody && len(resp.Body) == 0 {
		return nil, ig.NewInvalidResponse("expected a non-empty response body", httpReqForError, httpResp, resp.Body, nil)
	}

	if !c.expectBody && len(resp.Body) == 0 {
		var zero T

		return &zero, nil
	}

	// 7. Decode.
	dc := DecodeContext{
		ResponseHeader: resp.Headers,
		ServerDate:     parseServerDate(resp.Headers.Get(string(ig.HeaderDate))),
		Location:       locationFromExtra(c.extra),
		Extra:          c.extra,
	}

	if c.decode == nil {
		return nil, ig.NewInvalidResponse("no decoder configured for this call", httpReqForError, httpResp, resp.Body, nil)
	}

	result, err := c.decode(dc, resp.Body)
	if err != nil {
		return nil, ig.NewInvalidResponse("failed to decode response body", httpReqForError, httpResp, resp.Body, err)
	}

	return result, nil
}

// locationFromExtra pulls a *time.Location out of extra's "timezone" key,
// if a caller stashed one there via Call.Extra. Endpoints with no
// timezone-dependent fields never set it, so this is nil for them.
func locationFromExtra(extra map[string]interface{}) *time.Location {
	loc, _ := extra["timezone"].(*time.Location)

	return loc
}

func wrapAsInvalidRequest(err error) error {
	if igErr, ok := err.(*ig.Error); ok {
		return igErr
	}

	return ig.NewInvalidRequest("failed to assemble request headers", err)
}

func containsStatus(accepted []int, status int) bool {
	for _, s := range accepted {
		if s == status {
			return true
		}
	}

	return false
}

// serverDateLayout is the response Date header's format: "E, d MMM yyyy
// HH:mm:ss zzz" in Go reference-time terms.
const serverDateLayout = "Mon, 2 Jan 2006 15:04:05 MST"

func parseServerDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(serverDateLayout, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func toHTTPRequest(baseURL string, req *Request) (*http.Request, error) {
	httpReq, err := http.NewRequest(req.Method, baseURL+req.Path, nil)
	if err != nil {
		return nil, err
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

func toHTTPResponse(resp *Response) *http.Response {
	return &http.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Headers,
	}
}
