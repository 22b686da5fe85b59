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

package conf

import (
	"fmt"
	"time"
)

// ProviderConfig describes the JSON-RPC endpoint evmcfg fetches traces and
// bytecode from.
type ProviderConfig struct {
	// URL is the node's JSON-RPC HTTP endpoint, e.g. "http://localhost:8545".
	URL string `json:"url" yaml:"url"`

	// Timeout bounds each individual RPC call.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// OutputDir is the directory under which per-transaction result
	// directories are created.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// DefaultProviderConfig returns the default provider configuration.
func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		Timeout:   30 * time.Second,
		OutputDir: "Result",
	}
}

// Validate checks that the configuration is usable.
func (c *ProviderConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("provider URL must not be empty")
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.OutputDir == "" {
		c.OutputDir = "Result"
	}
	return nil
}
