package ledgergrp

import (
	"github.com/ardanlabs/ledger/business/sys/validate"
	"github.com/ardanlabs/ledger/foundation/ledger"
)

type pushRequest struct {
	Message  string  `json:"message" validate:"max=65536"`
	UserData string  `json:"userdata" validate:"max=65536"`
	Nonce    *uint64 `json:"nonce" validate:"required"`
}

// Validate checks the data in the model is considered clean.
func (pr pushRequest) Validate() error {
	return validate.Check(pr)
}

type mineRequest struct {
	Message  string `json:"message" validate:"max=65536"`
	UserData string `json:"userdata" validate:"max=65536"`
}

// Validate checks the data in the model is considered clean.
func (mr mineRequest) Validate() error {
	return validate.Check(mr)
}

type saveRequest struct {
	Destination string `json:"destination" validate:"required,excludesall=/\\"`
}

// Validate checks the data in the model is considered clean.
func (sr saveRequest) Validate() error {
	return validate.Check(sr)
}

// =============================================================================

type pushResponse struct {
	Accepted bool          `json:"accepted"`
	Block    *ledger.Block `json:"block,omitempty"`
}

type mineResponse struct {
	Mined bool          `json:"mined"`
	Block *ledger.Block `json:"block,omitempty"`
}

type blocksResponse struct {
	Count  int            `json:"count"`
	Blocks []ledger.Block `json:"blocks"`
}

type verifyResponse struct {
	Valid  bool    `json:"valid"`
	Blocks int     `json:"blocks"`
	Index  *uint64 `json:"index,omitempty"`
	Reason string  `json:"reason,omitempty"`
}

type statusResponse struct {
	Status string `json:"status"`
	Blocks int    `json:"blocks"`
}
