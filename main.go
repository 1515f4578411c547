// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		io.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}
}

// app holds the state shared by all commands
type app struct {
	verbose bool
	cfgFile string
	cfg     *config
}

// newRootCmd returns the framecalc command with all subcommands
func newRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:           "framecalc",
		Short:         "framecalc analyses plane frames with the direct stiffness method",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			level := charmlog.InfoLevel
			if a.verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(withLogger(cmd.Context(), logger))
			a.cfg, err = loadConfig(a.cfgFile)
			if err != nil {
				return
			}
			if a.cfg.File != "" {
				logger.Debug("config loaded", "file", a.cfg.File)
			}
			return
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: framecalc.{toml,json,yaml} in . or $HOME/.config/framecalc)")

	root.AddCommand(a.solveCommand())
	root.AddCommand(a.checkCommand())
	root.AddCommand(a.sampleCommand())
	root.AddCommand(a.convertCommand())
	root.AddCommand(a.runsCommand())
	return root
}
