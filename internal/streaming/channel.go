// Package streaming implements pkg/ig.Channel, the streaming collaborator
// contract of §4.5, over a multiplexed NATS connection: one physical
// connection, many logical per-item subscriptions, server-pushed payloads
// decoded into ig.Update maps.
//
// Grounded on the teacher's NATS-KV cache dependency (pkg/capi/cache.go),
// repurposed from a request-response cache into a genuine publish/
// subscribe streaming transport — the dependency stays, the concern it
// serves changes.
package streaming

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

const subscribeTimeout = 5 * time.Second

// Channel implements ig.Channel over a *nats.Conn. It is constructed
// directly from Credentials (streamer URL as the NATS server URL, the
// active token as the connection's token-auth credential), never from
// the request pipeline — per §4.5 the streaming channel depends on
// Credentials, not the other way around.
type Channel struct {
	conn   *nats.Conn
	logger ig.Logger
}

// New dials streamerURL using token as the NATS connection's bearer
// token. streamerURL and token both come from Credentials.
func New(streamerURL, token string, logger ig.Logger) (*Channel, error) {
	if logger == nil {
		logger = ig.NopLogger{}
	}

	conn, err := nats.Connect(streamerURL, nats.Token(token), nats.Name("ig-streaming"))
	if err != nil {
		return nil, ig.NewStreamerError("failed to connect to the streaming server", err)
	}

	return &Channel{conn: conn, logger: logger}, nil
}

func subject(item string) string {
	return "ig.stream." + item
}

// Subscribe maps (mode, item, fields) onto a NATS subject and, for
// StreamModeMerge, a shared queue group named after the mode so that
// only one subscriber instance in the group processes a given item's
// redundant pushes (Lightstreamer MERGE semantics). StreamModeDistinct
// uses a private per-call subscription instead, so every subscriber
// receives every discrete update.
func (c *Channel) Subscribe(ctx context.Context, mode ig.StreamMode, item string, fields []string, snapshot bool) (*ig.Producer, error) {
	if item == "" {
		return nil, ig.NewInvalidRequest("streaming item cannot be empty", nil)
	}

	subj := subject(item)

	values := make(chan ig.Update)
	errs := make(chan error, 1)

	msgs := make(chan *nats.Msg, 64)

	var sub *nats.Subscription
	var err error

	switch mode {
	case ig.StreamModeMerge:
		sub, err = c.conn.ChanQueueSubscribe(subj, "merge", msgs)
	case ig.StreamModeDistinct:
		sub, err = c.conn.ChanSubscribe(subj, msgs)
	default:
		return nil, ig.NewInvalidRequest(fmt.Sprintf("unknown stream mode %q", mode), nil)
	}

	if err != nil {
		return nil, ig.NewStreamerError("failed to subscribe to "+subj, err)
	}

	if snapshot {
		snap, snapErr := c.requestSnapshot(ctx, item, fields)
		if snapErr != nil {
			_ = sub.Unsubscribe()

			return nil, snapErr
		}

		if snap != nil {
			go func() {
				select {
				case values <- *snap:
				case <-ctx.Done():
				}
			}()
		}
	}

	go c.pump(ctx, sub, msgs, fields, values, errs)

	return &ig.Producer{Values: values, Errs: errs}, nil
}

// wireUpdate is the small flat JSON envelope field→value that streamed
// payloads arrive as.
type wireUpdate map[string]*string

func decodeUpdate(data []byte, fields []string) (ig.Update, error) {
	var raw wireUpdate
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	update := make(ig.Update, len(fields))

	if len(fields) == 0 {
		for key, value := range raw {
			update[key] = ig.FieldValue{Value: value}
		}

		return update, nil
	}

	for _, field := range fields {
		update[field] = ig.FieldValue{Value: raw[field]}
	}

	return update, nil
}

func (c *Channel) requestSnapshot(ctx context.Context, item string, fields []string) (*ig.Update, error) {
	reqCtx, cancel := context.WithTimeout(ctx, subscribeTimeout)
	defer cancel()

	msg, err := c.conn.RequestWithContext(reqCtx, subject(item)+".snapshot", nil)
	if err != nil {
		if err == nats.ErrNoResponders || err == nats.ErrTimeout {
			// No snapshot responder registered for this item; proceed with
			// the live subscription only.
			return nil, nil
		}

		return nil, ig.NewStreamerError("failed to request snapshot for "+item, err)
	}

	update, err := decodeUpdate(msg.Data, fields)
	if err != nil {
		snapErr := ig.NewStreamerError("failed to decode streaming snapshot", err)
		snapErr.Data = msg.Data

		return nil, snapErr
	}

	return &update, nil
}

func (c *Channel) pump(ctx context.Context, sub *nats.Subscription, msgs chan *nats.Msg, fields []string, values chan<- ig.Update, errs chan<- error) {
	defer close(values)
	defer close(errs)
	defer func() { _ = sub.Unsubscribe() }()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			update, err := decodeUpdate(msg.Data, fields)
			if err != nil {
				decodeErr := ig.NewStreamerError("failed to decode streaming update", err)
				decodeErr.Data = msg.Data

				select {
				case errs <- decodeErr:
				case <-ctx.Done():
				}

				return
			}

			select {
			case values <- update:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Close closes the underlying NATS connection. It does not cancel
// individual subscriptions; callers cancel those via the context passed
// to Subscribe.
func (c *Channel) Close() error {
	c.conn.Close()

	return nil
}
