// Package ledgergrp maintains the group of handlers for ledger access.
package ledgergrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ardanlabs/ledger/business/core/journal"
	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/ledger"
	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log         *zap.SugaredLogger
	Journal     *journal.Journal
	Evts        *events.Events
	MineTimeout time.Duration
	WS          websocket.Upgrader
}

// Genesis returns the first block in the chain.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blk, err := h.Journal.Genesis()
	if err != nil {
		return errs.NewTrusted(err, http.StatusNotFound)
	}

	return web.Respond(ctx, w, blk, http.StatusOK)
}

// Blocks returns every block in the chain.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks := h.Journal.Blocks()

	resp := blocksResponse{
		Count:  len(blocks),
		Blocks: blocks,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Block returns the block at the index provided in the path.
func (h Handlers) Block(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	index, err := strconv.ParseUint(web.Param(r, "index"), 10, 64)
	if err != nil {
		return errs.BadRequest(fmt.Errorf("invalid index: %w", err))
	}

	blk, err := h.Journal.Block(index)
	if err != nil {
		return errs.NewTrusted(err, http.StatusNotFound)
	}

	return web.Respond(ctx, w, blk, http.StatusOK)
}

// Push attempts to append a block using the nonce provided by the caller.
// A rejected nonce is an expected outcome and is not reported as an error.
func (h Handlers) Push(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req pushRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.BadRequest(err)
	}

	h.Log.Infow("push block", "traceid", web.GetTraceID(ctx), "nonce", *req.Nonce)

	blk, accepted, err := h.Journal.Push(req.Message, req.UserData, *req.Nonce)
	if err != nil {
		return fmt.Errorf("push: %w", err)
	}

	resp := pushResponse{
		Accepted: accepted,
	}
	if accepted {
		resp.Block = &blk
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mine lets the node search for the nonce and append the block.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req mineRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.BadRequest(err)
	}

	if h.MineTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.MineTimeout)
		defer cancel()
	}

	h.Log.Infow("mine block", "traceid", web.GetTraceID(ctx))

	blk, mined, err := h.Journal.Mine(ctx, req.Message, req.UserData)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return errs.NewTrusted(err, http.StatusServiceUnavailable)
		}
		return fmt.Errorf("mine: %w", err)
	}

	resp := mineResponse{
		Mined: mined,
	}
	if mined {
		resp.Block = &blk
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Verify runs the integrity checks over the chain. A chain that fails the
// checks is reported in the response body, not as a request failure.
func (h Handlers) Verify(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := verifyResponse{
		Valid:  true,
		Blocks: h.Journal.Len(),
	}

	if err := h.Journal.Verify(); err != nil {
		var ie *ledger.IntegrityError
		if !errors.As(err, &ie) {
			return fmt.Errorf("verify: %w", err)
		}

		resp.Valid = false
		resp.Index = &ie.Index
		resp.Reason = ie.Reason
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SaveAs writes a copy of the chain to a file next to the chain file.
func (h Handlers) SaveAs(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req saveRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.BadRequest(err)
	}

	if req.Destination != filepath.Base(req.Destination) || req.Destination == ".." {
		return errs.BadRequest(fmt.Errorf("destination %q must be a plain file name", req.Destination))
	}

	if err := h.Journal.SaveAs(req.Destination); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	resp := statusResponse{
		Status: fmt.Sprintf("chain saved to %s", req.Destination),
		Blocks: h.Journal.Len(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Reload replaces the in memory chain with the content of the chain file.
func (h Handlers) Reload(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if err := h.Journal.Reload(); err != nil {
		if errors.Is(err, ledger.ErrParse) {
			return errs.NewTrusted(err, http.StatusUnprocessableEntity)
		}
		return fmt.Errorf("reload: %w", err)
	}

	resp := statusResponse{
		Status: fmt.Sprintf("chain reloaded from %s", h.Journal.File()),
		Blocks: h.Journal.Len(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events handles a web socket to provide ledger events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, open := <-ch:
			if !open {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}

		case <-r.Context().Done():
			return nil
		}
	}
}
