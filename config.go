// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"

	"github.com/cpmech/gosl/chk"
	"github.com/spf13/viper"
	"github.com/wolfgang-alpha/TrussCalculator/inp"
)

// config holds the settings of the command line
type config struct {
	Solver   inp.SolverData // default solver data; model files may override it
	Db       string         // archive of runs; "" means no archive
	Sections string         // sections database; "" means none
	File     string         // config file in use; "" if none was found
}

// loadConfig reads framecalc.{toml,json,yaml} from the working directory or
// $HOME/.config/framecalc (or cfgFile if given). Environment variables prefixed with FRAMECALC_
// override the file; e.g. FRAMECALC_NSTATIONS=21
func loadConfig(cfgFile string) (cfg *config, err error) {

	// defaults
	var sd inp.SolverData
	sd.SetDefault()
	v := viper.New()
	v.SetDefault("zerotol", sd.ZeroTol)
	v.SetDefault("nstations", sd.Nstations)
	v.SetDefault("condmax", sd.CondMax)
	v.SetDefault("singular", sd.Singular)
	v.SetDefault("verbose", false)
	v.SetDefault("db", "")
	v.SetDefault("sections", "")

	// environment
	v.SetEnvPrefix("FRAMECALC")
	v.AutomaticEnv()

	// file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("framecalc")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/framecalc")
	}
	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, chk.Err("cannot read config file:\n%v", err)
		}
	}

	// results
	cfg = &config{
		Solver: inp.SolverData{
			ZeroTol:   v.GetFloat64("zerotol"),
			Nstations: v.GetInt("nstations"),
			CondMax:   v.GetFloat64("condmax"),
			Singular:  v.GetString("singular"),
			Verbose:   v.GetBool("verbose"),
		},
		Db:       v.GetString("db"),
		Sections: v.GetString("sections"),
		File:     v.ConfigFileUsed(),
	}
	if err = cfg.Solver.PostProcess(); err != nil {
		return nil, chk.Err("invalid config:\n%v", err)
	}
	return
}

// readModel reads a model file using the solver data and sections of the config
func (o *config) readModel(fn string) (mdl *inp.Model, sd *inp.SolverData, err error) {
	var sdb *inp.SecDb
	if o.Sections != "" {
		if sdb, err = inp.ReadSecDb(o.Sections); err != nil {
			return
		}
	}
	return inp.ReadModel(fn, &o.Solver, sdb)
}
