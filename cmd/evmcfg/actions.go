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
	"net/http"

	"github.com/urfave/cli/v2"

	"github.com/n42blockchain/evmcfg/conf"
	"github.com/n42blockchain/evmcfg/internal/pipeline"
	"github.com/n42blockchain/evmcfg/internal/postprocess"
	"github.com/n42blockchain/evmcfg/internal/rpcclient"
	"github.com/n42blockchain/evmcfg/log"
)

func setupLogging(c *cli.Context) {
	lc := conf.DefaultLoggerConfig()
	lc.Level = c.String("log.level")
	log.Init(lc)
}

func runReconstruct(c *cli.Context) error {
	setupLogging(c)

	if c.NArg() != 1 {
		return cli.Exit("expected exactly one argument: the transaction hash", 1)
	}
	txHash := c.Args().First()

	pc := conf.DefaultProviderConfig()
	pc.URL = c.String("provider")
	pc.OutputDir = c.String("output")
	if err := pc.Validate(); err != nil {
		return cli.Exit(err, 1)
	}

	client := rpcclient.New(pc.URL, &http.Client{Timeout: pc.Timeout})
	result, err := pipeline.Run(c.Context, client, txHash, pc.OutputDir)
	if err != nil {
		return cli.Exit(fmt.Sprintf("reconstruct %s: %v", txHash, err), 1)
	}

	fmt.Printf("built %d contract CFGs for %s, %d basic blocks total\n",
		len(result.ContractCFGs), txHash, len(result.Blocks))
	return nil
}

func runGrepNodes(c *cli.Context) error {
	setupLogging(c)

	txHash := c.String("tx")
	pc := conf.DefaultProviderConfig()
	pc.URL = c.String("provider")
	pc.OutputDir = c.String("output")
	if err := pc.Validate(); err != nil {
		return cli.Exit(err, 1)
	}

	client := rpcclient.New(pc.URL, &http.Client{Timeout: pc.Timeout})
	result, err := pipeline.Run(c.Context, client, txHash, pc.OutputDir)
	if err != nil {
		return cli.Exit(fmt.Sprintf("rebuild %s: %v", txHash, err), 1)
	}

	mnemonics := c.StringSlice("mnemonic")
	if len(mnemonics) == 0 {
		mnemonics = postprocess.DefaultInterestingMnemonics
	}

	var total int
	for addr, cfg := range result.StaticCFGs {
		matches := postprocess.FindInterestingNodes(cfg, mnemonics)
		for _, m := range matches {
			fmt.Printf("%s  node=%s_%d  pc=%d  %s\n", addr, m.Node.ContractAddress, m.Node.StartPC, m.PC, m.Mnemonic)
		}
		total += len(matches)
	}
	if total == 0 {
		fmt.Println("no matching instructions found")
	}
	return nil
}
