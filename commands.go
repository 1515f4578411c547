// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
	"github.com/wolfgang-alpha/TrussCalculator/ana"
	"github.com/wolfgang-alpha/TrussCalculator/fem"
	"github.com/wolfgang-alpha/TrussCalculator/inp"
	"github.com/wolfgang-alpha/TrussCalculator/out"
)

// solveCommand creates the "solve" command
func (a *app) solveCommand() *cobra.Command {
	var asJSON, withBcs bool
	var db string
	cmd := &cobra.Command{
		Use:   "solve <model>",
		Short: "Solve a model and print displacements, reactions and internal forces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			// model
			mdl, sd, err := a.cfg.readModel(args[0])
			if err != nil {
				return
			}
			logger.Debug("model read", "name", mdl.Name, "nodes", len(mdl.ActiveNodes()), "members", len(mdl.ActiveMembers()))

			// calculation. stdout carries the report; progress goes to the logger
			sd.Verbose = false
			logger.Debug("running calculation", "model", mdl.Name, "policy", sd.Singular)
			calc := fem.NewMain(mdl, sd, false)
			if err = calc.Run(); err != nil {
				return
			}
			res := calc.Results()
			logger.Debug("calculation finished", "ndof", res.Ndof, "cond", res.Cond, "singular", res.Singular)
			if res.Singular {
				logger.Warn("structure is underconstrained; displacements are a least-squares solution", "cond", res.Cond)
			}
			prog.done("solved", "model", mdl.Name, "ndof", res.Ndof)

			// output
			if asJSON {
				b, err := out.NewSummary(res).JSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
			} else {
				fmt.Fprint(cmd.OutOrStdout(), out.Report(res, withBcs))
			}

			// archive
			if db == "" {
				db = a.cfg.Db
			}
			if db == "" {
				return
			}
			store, err := out.OpenStore(db)
			if err != nil {
				return
			}
			defer store.Close()
			run, err := store.Save(cmd.Context(), res)
			if err != nil {
				return
			}
			logger.Info("run archived", "id", run.ID, "db", db)
			return
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	cmd.Flags().BoolVar(&withBcs, "bcs", false, "list boundary conditions")
	cmd.Flags().StringVar(&db, "db", "", "archive results in this SQLite database")
	return cmd
}

// checkCommand creates the "check" command
func (a *app) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <model>",
		Short: "Number DOFs and set boundary conditions without solving",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			mdl, sd, err := a.cfg.readModel(args[0])
			if err != nil {
				return
			}
			sd.Verbose = false
			dom, err := fem.NewDomain(mdl, sd)
			if err != nil {
				return
			}
			if err = dom.SetDofs(); err != nil {
				return
			}
			if err = dom.SetBcs(); err != nil {
				return
			}
			fmt.Fprint(cmd.OutOrStdout(), checkReport(dom))
			loggerFromContext(cmd.Context()).Info("model is consistent", "model", mdl.Name, "ndof", dom.Ndof)
			return
		},
	}
}

// sampleCommand creates the "sample" command
func (a *app) sampleCommand() *cobra.Command {
	var nstations int
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "sample <model> <member>",
		Short: "Print deflections, bending moments and shear forces along a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			member, err := strconv.Atoi(args[1])
			if err != nil {
				return chk.Err("member %q is invalid. use the member handle", args[1])
			}
			mdl, sd, err := a.cfg.readModel(args[0])
			if err != nil {
				return
			}
			sd.Verbose = false
			res, err := fem.Calculate(mdl, sd)
			if err != nil {
				return
			}
			if nstations < 1 {
				nstations = sd.Nstations
			}
			d, err := out.BeamDiagram(res, member, nstations)
			if err != nil {
				return
			}
			if asJSON {
				b, err := json.MarshalIndent(d, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), d.Table(""))
			return
		},
	}
	cmd.Flags().IntVarP(&nstations, "stations", "n", 0, "number of stations (default: solver nstations)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print values as JSON")
	return cmd
}

// convertCommand creates the "convert" command
func (a *app) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a model file between JSON and TOML",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			mdl, sd, err := a.cfg.readModel(args[0])
			if err != nil {
				return
			}
			if err = inp.WriteModel(args[1], mdl, sd); err != nil {
				return
			}
			loggerFromContext(cmd.Context()).Info("model written", "file", args[1])
			return
		},
	}
}

// runsCommand creates the "runs" command and its subcommands
func (a *app) runsCommand() *cobra.Command {
	var db, name string
	var limit int
	open := func() (*out.Store, error) {
		if db == "" {
			db = a.cfg.Db
		}
		if db == "" {
			return nil, chk.Err("archive is not set. use --db or set db in the config file")
		}
		return out.OpenStore(db)
	}
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			store, err := open()
			if err != nil {
				return
			}
			defer store.Close()
			runs, err := store.List(cmd.Context(), name, limit)
			if err != nil {
				return
			}
			fmt.Fprint(cmd.OutOrStdout(), runsTable(runs))
			return
		},
	}
	cmd.PersistentFlags().StringVar(&db, "db", "", "SQLite database with archived runs")
	cmd.Flags().StringVar(&name, "name", "", "only runs of this structure")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs; -1 means all")

	var asJSON bool
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the results of an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			store, err := open()
			if err != nil {
				return
			}
			defer store.Close()
			run, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return
			}
			if asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), string(run.Summary))
				return
			}
			sum, err := run.Results()
			if err != nil {
				return
			}
			fmt.Fprint(cmd.OutOrStdout(), io.Sf("run %v: %s @ %v\n", run.ID, run.Name, run.CreatedAt.Format("2006-01-02 15:04:05")))
			fmt.Fprint(cmd.OutOrStdout(), sum.NodeTable()+sum.MemberTable())
			return
		},
	}
	show.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			store, err := open()
			if err != nil {
				return
			}
			defer store.Close()
			if err = store.Delete(cmd.Context(), args[0]); err != nil {
				return
			}
			loggerFromContext(cmd.Context()).Info("run removed", "id", args[0])
			return
		},
	}

	cmd.AddCommand(show, rm)
	return cmd
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// checkReport returns the numbering, member flexibilities and boundary conditions of a domain
func checkReport(dom *fem.Domain) (l string) {
	l = io.Sf("structure      = %s\n", dom.Mdl.Name)
	l += io.Sf("number of DOFs = %d\n", dom.Ndof)
	var nf, nu int
	for i := 0; i < dom.Ndof; i++ {
		if dom.Sys.Fknown[i] {
			nf++
		}
		if dom.Sys.Uknown[i] {
			nu++
		}
	}
	l += io.Sf("known forces   = %d\n", nf)
	l += io.Sf("known displ.   = %d\n", nu)

	// coincidence table and unit-load flexibilities
	table := fem.CoincidenceTable(dom.Beams)
	l += "\n==================================================================================================\n"
	l += io.Sf("%8s%6s%6s%6s%6s%6s%6s%6s%6s%18s%18s\n", "member", "n0", "n1", "w1", "φ1", "w2", "φ2", "u1", "u2", "δ axial", "δ tip")
	l += "--------------------------------------------------------------------------------------------------\n"
	for i, b := range dom.Beams {
		var bar ana.AxialBar
		var cant ana.Cantilever
		bar.Init(1, b.L, b.E, b.A)
		cant.Init(1, b.L, b.E, b.I)
		l += io.Sf("%8d%6d%6d", b.Id, b.Nodes[0], b.Nodes[1])
		for _, eq := range table[i] {
			l += io.Sf("%6d", eq)
		}
		l += io.Sf("%18.6e%18.6e\n", bar.Elongation(), cant.TipDeflection())
	}
	l += "==================================================================================================\n"
	l += dom.Bcs.List()
	return
}

// runsTable lists archived runs
func runsTable(runs []*out.Run) (l string) {
	l = io.Sf("%-38s%-21s%-20s%6s%14s%14s%10s\n", "id", "created", "name", "ndof", "max|N|", "max|U|", "singular")
	for _, r := range runs {
		l += io.Sf("%-38s%-21s%-20s%6d%14.6e%14.6e%10v\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Name, r.Ndof, r.MaxAbsN, r.MaxAbsU, r.Singular)
	}
	return
}
