package ig

import (
	"context"
	"errors"
	"net/http"
)

// PageContext carries the request and decoded cursor metadata from the
// most recently executed page, so NextRequestFunc can compute the
// following one.
type PageContext[Meta any] struct {
	Request *http.Request
	Meta    Meta
}

// NextRequestFunc computes the request for the next page given the
// previous page's context (nil on the first call). Returning a nil
// request and a nil error means pagination is complete.
type NextRequestFunc[Meta any] func(ctx context.Context, previous *PageContext[Meta]) (*http.Request, error)

// EndpointFunc executes req and returns the page's cursor metadata
// together with the items it produced, in the order the server returned
// them.
type EndpointFunc[Meta, Item any] func(ctx context.Context, req *http.Request) (Meta, []Item, error)

// StreamResult is one page's worth of items, or the terminal error, as
// delivered by PageStream.Stream.
type StreamResult[Item any] struct {
	Items []Item
	Err   error
}

// PageStream is the pagination combinator's lazy result: a cold,
// cancellable sequence of pages. Items within a page are delivered in
// the order endpoint produced them; page N is fully delivered before
// page N+1 is requested.
type PageStream[Item any] struct {
	ctx   context.Context
	fetch func(ctx context.Context) ([]Item, bool, error)
}

// Paginate performs requests serially: it calls next with no previous
// page to obtain the first request, runs endpoint against it, then
// calls next again with the just-completed page's context to obtain the
// following request, repeating until next returns (nil, nil). Any
// endpoint error terminates the stream, enriched with the last
// successfully executed page's request as context.
func Paginate[Meta, Item any](ctx context.Context, next NextRequestFunc[Meta], endpoint EndpointFunc[Meta, Item]) *PageStream[Item] {
	var previous *PageContext[Meta]
	var lastSuccessfulRequest *http.Request

	fetch := func(ctx context.Context) ([]Item, bool, error) {
		req, err := next(ctx, previous)
		if err != nil {
			return nil, false, err
		}

		if req == nil {
			return nil, false, nil
		}

		meta, items, err := endpoint(ctx, req)
		if err != nil {
			var igErr *Error
			if errors.As(err, &igErr) && lastSuccessfulRequest != nil {
				igErr.WithContext("last successfully executed paginated request", lastSuccessfulRequest)
			}

			return nil, false, err
		}

		previous = &PageContext[Meta]{Request: req, Meta: meta}
		lastSuccessfulRequest = req

		return items, true, nil
	}

	return &PageStream[Item]{ctx: ctx, fetch: fetch}
}

// All eagerly drains the stream and returns every item, in order.
func (s *PageStream[Item]) All() ([]Item, error) {
	var all []Item

	err := s.ForEach(func(item Item) error {
		all = append(all, item)

		return nil
	})

	return all, err
}

// ForEach synchronously drains the stream, invoking fn for each item in
// order. Returning an error from fn stops iteration and is returned from
// ForEach unchanged.
func (s *PageStream[Item]) ForEach(fn func(Item) error) error {
	for {
		select {
		case <-s.ctx.Done():
			return s.ctx.Err()
		default:
		}

		items, ok, err := s.fetch(s.ctx)
		if err != nil {
			return err
		}

		if !ok {
			return nil
		}

		for _, item := range items {
			if err := fn(item); err != nil {
				return err
			}
		}
	}
}

// Stream returns a channel of page-sized results. The channel is closed
// when pagination completes normally, after an error is delivered, or
// when ctx is cancelled — in all cases no further values follow.
func (s *PageStream[Item]) Stream() <-chan StreamResult[Item] {
	out := make(chan StreamResult[Item])

	go func() {
		defer close(out)

		for {
			select {
			case <-s.ctx.Done():
				return
			default:
			}

			items, ok, err := s.fetch(s.ctx)
			if err != nil {
				select {
				case out <- StreamResult[Item]{Err: err}:
				case <-s.ctx.Done():
				}

				return
			}

			if !ok {
				return
			}

			select {
			case out <- StreamResult[Item]{Items: items}:
			case <-s.ctx.Done():
				return
			}
		}
	}()

	return out
}
