// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

// Package rpcclient is a minimal JSON-RPC 2.0 HTTP client for the three
// calls evmcfg needs from an Ethereum-family node: fetching a
// transaction's destination address, its runtime bytecode, and its
// structured-log execution trace.
//
// No example in this tool's ancestry ships an outbound JSON-RPC client —
// the N42 node only ever serves these endpoints, never calls them — so
// this package is built directly on net/http and encoding/json rather
// than adapted from existing code; see DESIGN.md for the full
// justification.
package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	evmerrors "github.com/n42blockchain/evmcfg/pkg/errors"
)

// Client issues JSON-RPC 2.0 requests against a single node endpoint.
type Client struct {
	url        string
	httpClient *http.Client
}

// New returns a Client that talks to url using httpClient for transport.
func New(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{url: url, httpClient: httpClient}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	ID     int             `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

func (c *Client) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	reqBody, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return evmerrors.Wrapf(evmerrors.ErrTransport, "encode %s request", method)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBody))
	if err != nil {
		return evmerrors.Wrapf(evmerrors.ErrTransport, "build %s request", method)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return evmerrors.Wrapf(evmerrors.ErrTransport, "%s: %v", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return evmerrors.Wrapf(evmerrors.ErrTransport, "%s: read response", method)
	}
	if resp.StatusCode != http.StatusOK {
		return evmerrors.Wrapf(evmerrors.ErrTransport, "%s: http status %d", method, resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return evmerrors.Wrapf(evmerrors.ErrTransport, "%s: decode envelope", method)
	}
	if rpcResp.Error != nil {
		return evmerrors.Wrapf(evmerrors.ErrTransport, "%s: %s", method, rpcResp.Error.Message)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return evmerrors.Wrapf(evmerrors.ErrMalformedTrace, "%s: decode result", method)
	}
	return nil
}

// TransactionResult mirrors the fields evmcfg needs from an
// eth_getTransactionByHash-equivalent response.
type TransactionResult struct {
	Hash string  `json:"hash"`
	To   *string `json:"to"`
	From string  `json:"from"`
}

// GetTransactionByHash fetches a transaction's envelope, principally for
// its destination address.
func (c *Client) GetTransactionByHash(ctx context.Context, txHash string) (*TransactionResult, error) {
	var tx TransactionResult
	if err := c.call(ctx, "eth_getTransactionByHash", []interface{}{txHash}, &tx); err != nil {
		return nil, err
	}
	if tx.Hash == "" {
		return nil, evmerrors.Wrapf(evmerrors.ErrMalformedTrace, "transaction %s not found", txHash)
	}
	return &tx, nil
}

// GetCode fetches an address's runtime bytecode as a "0x"-prefixed hex
// string.
func (c *Client) GetCode(ctx context.Context, address string) (string, error) {
	var code string
	if err := c.call(ctx, "eth_getCode", []interface{}{address, "latest"}, &code); err != nil {
		return "", err
	}
	return code, nil
}

// StructLog mirrors one entry of a debug_traceTransaction-equivalent
// response's structLogs array.
type StructLog struct {
	PC    uint64   `json:"pc"`
	Op    string   `json:"op"`
	Depth int      `json:"depth"`
	Stack []string `json:"stack"`
}

// TraceResult mirrors the top-level debug_traceTransaction-equivalent
// response.
type TraceResult struct {
	Gas        uint64      `json:"gas"`
	Failed     bool        `json:"failed"`
	StructLogs []StructLog `json:"structLogs"`
}

// TraceTransaction fetches the structured-log execution trace for txHash.
func (c *Client) TraceTransaction(ctx context.Context, txHash string) (*TraceResult, error) {
	params := []interface{}{txHash, map[string]interface{}{"disableMemory": true, "disableStorage": true}}
	var trace TraceResult
	if err := c.call(ctx, "debug_traceTransaction", params, &trace); err != nil {
		return nil, err
	}
	if trace.StructLogs == nil {
		return nil, evmerrors.Wrapf(evmerrors.ErrMalformedTrace, "trace %s has no structLogs", txHash)
	}
	return &trace, nil
}
