// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"
	"time"

	"github.com/ardanlabs/ledger/app/services/node/handlers/v1/ledgergrp"
	"github.com/ardanlabs/ledger/business/core/journal"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log         *zap.SugaredLogger
	Journal     *journal.Journal
	Evts        *events.Events
	MineTimeout time.Duration
}

// Routes binds all the version 1 routes.
func Routes(app *web.App, cfg Config) {
	lgh := ledgergrp.Handlers{
		Log:         cfg.Log,
		Journal:     cfg.Journal,
		Evts:        cfg.Evts,
		MineTimeout: cfg.MineTimeout,
	}

	app.Handle(http.MethodGet, version, "/genesis", lgh.Genesis)
	app.Handle(http.MethodGet, version, "/blocks/list", lgh.Blocks)
	app.Handle(http.MethodGet, version, "/blocks/index/:index", lgh.Block)
	app.Handle(http.MethodPost, version, "/blocks/push", lgh.Push)
	app.Handle(http.MethodPost, version, "/blocks/mine", lgh.Mine)
	app.Handle(http.MethodGet, version, "/chain/verify", lgh.Verify)
	app.Handle(http.MethodPost, version, "/chain/save", lgh.SaveAs)
	app.Handle(http.MethodPost, version, "/chain/reload", lgh.Reload)
	app.Handle(http.MethodGet, version, "/events", lgh.Events)
}
