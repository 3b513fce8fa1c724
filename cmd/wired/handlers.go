package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/wired/core/body"
	"github.com/dmitrymomot/wired/core/broadcast"
	"github.com/dmitrymomot/wired/core/message"
	"github.com/dmitrymomot/wired/core/pipeline"
	"github.com/dmitrymomot/wired/core/scope"
	"github.com/dmitrymomot/wired/core/store"
	"github.com/dmitrymomot/wired/core/transport"
)

// hits counts HTTP requests served by the process.
type hits struct {
	n int
}

// total is the per-session accumulator.
type total struct {
	sum int
}

// received counts the messages of one connection.
type received struct {
	n int
}

// maxTotal bounds the session accumulator.
const maxTotal = 1_000_000

var errTotalOverflow = transport.ErrBadRequest.WithMessage(fmt.Sprintf("total must stay between -%d and %d", maxTotal, maxTotal))

func countHit(_ context.Context, c *scope.HTTPContext) error {
	h := store.GetMutOrInsert[hits](c.GlobalScope())
	defer h.Release()
	h.Ptr().n++
	return nil
}

func index(_ context.Context, c *scope.HTTPContext) (pipeline.Outcome, error) {
	return transport.Stop(c, transport.Text(http.StatusOK, "wired"))
}

func showHits(_ context.Context, c *scope.HTTPContext) (pipeline.Outcome, error) {
	h, _ := store.GetCloned[hits](c.GlobalScope())
	return transport.Stop(c, transport.JSON(http.StatusOK, map[string]int{"hits": h.n}))
}

type addRequest struct {
	Value int `json:"value" form:"value"`
}

func accumulate(_ context.Context, c *scope.HTTPContext) (pipeline.Outcome, error) {
	req, err := body.Decode[addRequest](c)
	if err != nil {
		return pipeline.Break, err
	}

	var sum int
	err = store.Update(c.SessionScope(), func(t *total) error {
		next := t.sum + req.Value
		if next > maxTotal || next < -maxTotal {
			return errTotalOverflow
		}
		t.sum = next
		sum = next
		return nil
	})
	if err != nil {
		return pipeline.Break, err
	}
	return transport.Stop(c, transport.JSON(http.StatusOK, map[string]int{"total": sum}))
}

func showTotal(_ context.Context, c *scope.HTTPContext) (pipeline.Outcome, error) {
	t, _ := store.GetCloned[total](c.SessionScope())
	return transport.Stop(c, transport.JSON(http.StatusOK, map[string]int{"total": t.sum}))
}

func resetTotal(_ context.Context, c *scope.HTTPContext) (pipeline.Outcome, error) {
	store.Remove[total](c.SessionScope())
	return transport.Stop(c, transport.NoContent(http.StatusNoContent))
}

// fanOut sends the request body as a text message to every websocket of the
// caller's session.
func fanOut(b *broadcast.Broadcaster) httpHandler {
	return func(ctx context.Context, c *scope.HTTPContext) (pipeline.Outcome, error) {
		data, err := body.Bytes(c)
		if err != nil {
			return pipeline.Break, err
		}
		n, err := b.Send(ctx, c, message.NewText(string(data)))
		if err != nil {
			return pipeline.Break, err
		}
		return transport.Stop(c, transport.JSON(http.StatusOK, map[string]int{"sent": n}))
	}
}

func countMessage(_ context.Context, c *scope.WebSocketContext) error {
	h := store.GetMutOrInsert[received](c.ConnectionScope())
	defer h.Release()
	h.Ptr().n++
	return nil
}

// wsCommand is the JSON frame clients send over the websocket.
type wsCommand struct {
	Action string `json:"action"`
	Text   string `json:"text"`
}

var errUnknownAction = errors.New("unknown action")

// command answers echo, broadcast and count actions.
func command(b *broadcast.Broadcaster) wsHandler {
	return func(ctx context.Context, c *scope.WebSocketContext) (pipeline.Outcome, error) {
		cmd, err := body.Decode[wsCommand](c)
		if err != nil {
			return pipeline.Break, err
		}

		switch cmd.Action {
		case "echo":
			return pipeline.Continue, b.SendTo(ctx, c.ConnectionScope(), message.NewText(cmd.Text))
		case "broadcast":
			_, err := b.Send(ctx, c, message.NewText(cmd.Text))
			return pipeline.Continue, err
		case "count":
			r, _ := store.GetCloned[received](c.ConnectionScope())
			m, err := message.NewJSON(map[string]int{"received": r.n})
			if err != nil {
				return pipeline.Break, err
			}
			return pipeline.Continue, b.SendTo(ctx, c.ConnectionScope(), m)
		default:
			return pipeline.Break, fmt.Errorf("%w: %q", errUnknownAction, cmd.Action)
		}
	}
}
