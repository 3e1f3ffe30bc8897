package rpcapi

import "github.com/pqwallet/walletd/internal/daemonerr"

// Envelope is the "status (0 = ok) / error_message" wrapper every
// response embeds (spec §6, "Each method takes a request message,
// returns a response with status ... and error_message").
//
// Status 0 always means success. On failure, status is 1+Kind so that
// even daemonerr.KindUnknown (itself 0) reports a nonzero status —
// status alone never collides with the success case.
type Envelope struct {
	Status       int    `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

func envelopeFor(err error) Envelope {
	if err == nil {
		return Envelope{Status: 0}
	}
	return Envelope{
		Status:       int(daemonerr.KindOf(err)) + 1,
		ErrorMessage: err.Error(),
	}
}
