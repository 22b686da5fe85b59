// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.

package pipeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/n42blockchain/evmcfg/internal/rpcclient"
)

type rpcRequest struct {
	Method string        `json:"method"`
	ID     int           `json:"id"`
	Params []interface{} `json:"params"`
}

func newMockProvider(t *testing.T) *httptest.Server {
	t.Helper()
	// A single contract, bytecode: PUSH1 0x01, STOP.
	const code = "0x600100"

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		var result interface{}
		switch req.Method {
		case "eth_getTransactionByHash":
			dest := "0x2222222222222222222222222222222222222222"
			result = map[string]interface{}{"hash": "0xdeadbeef", "to": dest, "from": "0x1"}
		case "debug_traceTransaction":
			result = map[string]interface{}{
				"gas":    21000,
				"failed": false,
				"structLogs": []map[string]interface{}{
					{"pc": 0, "op": "PUSH1", "depth": 1, "stack": []string{}},
					{"pc": 2, "op": "STOP", "depth": 1, "stack": []string{"0x1"}},
				},
			}
		case "eth_getCode":
			result = code
		default:
			t.Fatalf("unexpected method %s", req.Method)
		}

		resp := map[string]interface{}{"id": req.ID, "result": result}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestRunPersistsArtefacts(t *testing.T) {
	srv := newMockProvider(t)
	defer srv.Close()

	outDir := t.TempDir()
	client := rpcclient.New(srv.URL, nil)

	result, err := Run(context.Background(), client, "0xdeadbeef", outDir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Blocks) == 0 {
		t.Error("expected at least one basic block")
	}
	if result.TransactionCFG == nil {
		t.Error("expected a non-nil transaction CFG")
	}

	txDir := filepath.Join(outDir, "deadbeef")
	for _, name := range []string{"trace.json", "blocks.json", "transaction_cfg.dot"} {
		if _, err := os.Stat(filepath.Join(txDir, name)); err != nil {
			t.Errorf("expected artefact %s to exist: %v", name, err)
		}
	}
}
