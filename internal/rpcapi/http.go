package rpcapi

import (
	"context"
	"encoding/json"
	"net/http"
)

// NewHTTPHandler exposes Service over JSON-over-HTTP: one POST endpoint
// per RPC method under prefix, body and response both JSON (spec §6's
// "grpc-like method surface", minus an actual RPC framework — see
// DESIGN.md for why no framework from the pack could be wired here).
func NewHTTPHandler(s *Service) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/rpc/AddNewAddress", post(s, (*Service).AddNewAddress))
	mux.HandleFunc("/rpc/AddAddressFromSeed", post(s, (*Service).AddAddressFromSeed))
	mux.HandleFunc("/rpc/ListAddresses", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.ListAddresses(r.Context()))
	})
	mux.HandleFunc("/rpc/RemoveAddress", post(s, (*Service).RemoveAddress))
	mux.HandleFunc("/rpc/GetRecoverySeeds", post(s, (*Service).GetRecoverySeeds))
	mux.HandleFunc("/rpc/GetWalletInfo", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.GetWalletInfo(r.Context()))
	})
	mux.HandleFunc("/rpc/EncryptWallet", postEnvelope(s, (*Service).EncryptWallet))
	mux.HandleFunc("/rpc/LockWallet", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.LockWallet(r.Context()))
	})
	mux.HandleFunc("/rpc/UnlockWallet", postEnvelope(s, (*Service).UnlockWallet))
	mux.HandleFunc("/rpc/ChangePassphrase", postEnvelope(s, (*Service).ChangePassphrase))

	mux.HandleFunc("/rpc/RelayTransferTxn", post(s, (*Service).RelayTransferTxn))
	mux.HandleFunc("/rpc/RelayMessageTxn", post(s, (*Service).RelayMessageTxn))
	mux.HandleFunc("/rpc/RelayTokenTxn", post(s, (*Service).RelayTokenTxn))
	mux.HandleFunc("/rpc/RelayTransferTokenTxn", post(s, (*Service).RelayTransferTokenTxn))
	mux.HandleFunc("/rpc/RelaySlaveTxn", post(s, (*Service).RelaySlaveTxn))

	mux.HandleFunc("/rpc/GetTransaction", post(s, (*Service).GetTransaction))
	mux.HandleFunc("/rpc/GetBalance", post(s, (*Service).GetBalance))
	mux.HandleFunc("/rpc/GetOTS", post(s, (*Service).GetOTS))
	mux.HandleFunc("/rpc/GetHeight", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.GetHeight(r.Context()))
	})
	mux.HandleFunc("/rpc/GetBlock", post(s, (*Service).GetBlock))
	mux.HandleFunc("/rpc/GetBlockByNumber", post(s, (*Service).GetBlockByNumber))

	return mux
}

// post adapts a Service method of shape func(ctx, Req) Resp into an
// http.HandlerFunc that decodes the request body as JSON and writes the
// response as JSON. A body that fails to decode gets an envelope with
// status badRequestStatus rather than a bare HTTP error, so callers only
// ever need to parse one response shape.
func post[Req, Resp any](s *Service, method func(*Service, context.Context, Req) Resp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Req
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, Envelope{Status: badRequestStatus, ErrorMessage: "rpcapi: malformed request body: " + err.Error()})
			return
		}
		writeJSON(w, method(s, r.Context(), req))
	}
}

// postEnvelope is post's counterpart for methods that return a bare
// Envelope rather than an Envelope-embedding response.
func postEnvelope[Req any](s *Service, method func(*Service, context.Context, Req) Envelope) http.HandlerFunc {
	return post[Req, Envelope](s, method)
}

// badRequestStatus is used only for requests that never reach the
// daemon at all (undecodable JSON) and so never get a daemonerr.Kind.
const badRequestStatus = -1

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
