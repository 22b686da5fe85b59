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

package main

import (
	"github.com/urfave/cli/v2"
)

var (
	providerFlag = &cli.StringFlag{
		Name:    "provider",
		Usage:   "JSON-RPC endpoint of the node to query",
		EnvVars: []string{"EVMCFG_PROVIDER"},
		Value:   "http://localhost:8545",
	}
	outputDirFlag = &cli.StringFlag{
		Name:  "output",
		Usage: "directory under which per-transaction artefacts are written",
		Value: "Result",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log.level",
		Usage: "trace, debug, info, warn, error, fatal",
		Value: "info",
	}
)

var rootFlags = []cli.Flag{
	providerFlag,
	outputDirFlag,
	logLevelFlag,
}

var grepNodesCommand = &cli.Command{
	Name:  "grep-nodes",
	Usage: "rebuild a transaction's static CFGs and list nodes containing interesting opcodes",
	Flags: []cli.Flag{
		providerFlag,
		&cli.StringFlag{Name: "tx", Usage: "transaction hash to analyze", Required: true},
		outputDirFlag,
		&cli.StringSliceFlag{Name: "mnemonic", Usage: "opcode mnemonics to flag (default: CALL family, SSTORE)"},
	},
	Action: runGrepNodes,
}
