// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aplane-algo/apkeys/internal/security"
	"github.com/aplane-algo/apkeys/internal/util"
)

// app holds the global flags and the configuration resolved from them.
type app struct {
	dataDir    string
	walletFile string
	debug      bool

	config util.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "apkey",
		Short:        "Create and use an encrypted wallet key",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVarP(&a.dataDir, "data-dir", "d", "", "data directory (or set "+util.DataDirEnvVar+", default ~/.apkey)")
	root.PersistentFlags().StringVarP(&a.walletFile, "file", "f", "", "wallet file (default from config, relative to the data directory)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging (or set "+util.DebugEnvVar+")")

	root.AddCommand(
		newCreateCmd(a),
		newInfoCmd(a),
		newPhraseCmd(a),
		newExportCmd(a),
		newSignCmd(a),
		newVerifyCmd(),
		newVersionCmd(),
	)
	return root
}

func (a *app) init() error {
	util.InitLogger(a.debug)

	dataDir := util.GetDataDir(a.dataDir)
	if dataDir == "" {
		return fmt.Errorf("could not determine data directory; use -d <path> or set %s", util.DataDirEnvVar)
	}
	a.dataDir = dataDir

	config, err := util.LoadConfig(dataDir)
	if err != nil {
		return err
	}
	a.config = config

	if err := security.Harden(config.LockMemory); err != nil {
		return err
	}
	util.Debug("resolved data directory", "data_dir", dataDir, "wallet", a.walletPath())
	return nil
}

// walletPath returns the -f flag resolved against the data directory, or the configured wallet file.
func (a *app) walletPath() string {
	if a.walletFile != "" {
		return util.ResolvePath(a.walletFile, a.dataDir)
	}
	return a.config.WalletFile
}
