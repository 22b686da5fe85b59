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
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/n42blockchain/evmcfg/params"
)

const usageText = `evmcfg [options] <tx-hash>

Reconstruct the control-flow graph of an on-chain transaction.

  evmcfg --provider http://localhost:8545 0xabc...   fetch, build, and render a transaction's CFGs
  evmcfg grep-nodes --tx 0xabc... --mnemonic SSTORE   list nodes matching interesting opcodes

See 'evmcfg <command> --help' for command-specific options.`

func main() {
	app := &cli.App{
		Name:                   "evmcfg",
		Usage:                  "EVM transaction control-flow graph reconstruction",
		UsageText:              usageText,
		Version:                params.VersionWithCommit(params.GitCommit),
		Flags:                  rootFlags,
		Commands:               []*cli.Command{grepNodesCommand},
		UseShortOptionHandling: true,
		Action:                 runReconstruct,
		Copyright:              "Copyright 2022-2026 The N42 Authors",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
