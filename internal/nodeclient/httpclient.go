package nodeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPClient is a NodeClient backed by a JSON-over-HTTP node endpoint —
// the same transport convention internal/rpcapi uses for the daemon's
// own inbound surface (spec §6, "Node client outbound contract"). The
// pack carries no QRL node SDK, so this is the daemon's own minimal
// implementation of the contract rather than a vendored one.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
}

var _ NodeClient = (*HTTPClient)(nil)

// NewHTTPClient builds an HTTPClient against baseURL using
// http.DefaultClient.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{BaseURL: baseURL, HTTP: http.DefaultClient}
}

func (c *HTTPClient) post(ctx context.Context, path string, req, resp any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("nodeclient: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("nodeclient: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return fmt.Errorf("nodeclient: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(httpResp.Body)
		return fmt.Errorf("nodeclient: node returned %s: %s", httpResp.Status, string(data))
	}
	if resp == nil {
		return nil
	}
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return fmt.Errorf("nodeclient: decode response: %w", err)
	}
	return nil
}

type pushTransactionRequest struct {
	SignedTx []byte `json:"signed_tx"`
}

type pushTransactionResponse struct {
	Result string `json:"result"`
}

func (c *HTTPClient) PushTransaction(ctx context.Context, signedTxBytes []byte) (PushResult, error) {
	var resp pushTransactionResponse
	if err := c.post(ctx, "/node/PushTransaction", pushTransactionRequest{SignedTx: signedTxBytes}, &resp); err != nil {
		return PushUnknown, err
	}
	return PushResult(resp.Result), nil
}

type getAddressStateRequest struct {
	Address string `json:"address"`
}

func (c *HTTPClient) GetAddressState(ctx context.Context, qaddress string) (AddressState, error) {
	var resp AddressState
	err := c.post(ctx, "/node/GetAddressState", getAddressStateRequest{Address: qaddress}, &resp)
	return resp, err
}

type getObjectRequest struct {
	Hash [32]byte `json:"hash"`
}

func (c *HTTPClient) GetObject(ctx context.Context, hash [32]byte) (Object, error) {
	var resp Object
	err := c.post(ctx, "/node/GetObject", getObjectRequest{Hash: hash}, &resp)
	return resp, err
}

func (c *HTTPClient) GetNodeState(ctx context.Context) (NodeState, error) {
	var resp NodeState
	err := c.post(ctx, "/node/GetNodeState", struct{}{}, &resp)
	return resp, err
}

type getBlockByNumberRequest struct {
	Number uint64 `json:"number"`
}

type getBlockByNumberResponse struct {
	Data []byte `json:"data"`
}

func (c *HTTPClient) GetBlockByNumber(ctx context.Context, number uint64) ([]byte, error) {
	var resp getBlockByNumberResponse
	err := c.post(ctx, "/node/GetBlockByNumber", getBlockByNumberRequest{Number: number}, &resp)
	return resp.Data, err
}
