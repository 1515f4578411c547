// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the direct stiffness method for plane frames
package fem

import (
	"sync"
	"time"

	"github.com/cpmech/gosl/io"
	"github.com/wolfgang-alpha/TrussCalculator/inp"
)

// Calculate runs one calculation pass over a snapshot of mdl. The model is not modified.
// sd may be nil, in which case default solver data is used. A failed pass returns no results
func Calculate(mdl *inp.Model, sd *inp.SolverData) (res *Results, err error) {

	// solver data
	if sd == nil {
		sd = new(inp.SolverData)
		sd.SetDefault()
	} else {
		cpy := *sd
		sd = &cpy
	}
	if err = sd.PostProcess(); err != nil {
		return
	}

	// domain
	dom, err := NewDomain(mdl.Snapshot(), sd)
	if err != nil {
		return
	}
	if err = dom.SetDofs(); err != nil {
		return
	}
	if err = dom.SetBcs(); err != nil {
		return
	}
	singular, cond, err := dom.Solve()
	if err != nil {
		return
	}
	return newResults(dom, singular, cond), nil
}

// Main binds a structural model to the solver. Calculation passes are serialised and the results
// of the last successful pass are kept
type Main struct {
	Mdl     *inp.Model      // structural model
	Sim     *inp.SolverData // solver data
	ShowMsg bool            // show messages

	mu      sync.Mutex
	results *Results
	status  string
}

// NewMain returns a new Main structure
//  Input:
//   mdl     -- structural model
//   sd      -- solver data; nil means default values
//   verbose -- show messages
func NewMain(mdl *inp.Model, sd *inp.SolverData, verbose bool) (o *Main) {
	o = &Main{Mdl: mdl, Sim: sd, ShowMsg: verbose}
	if o.Sim == nil {
		o.Sim = new(inp.SolverData)
		o.Sim.SetDefault()
	}
	return
}

// Run runs a calculation pass. On failure, previous results are discarded
func (o *Main) Run() (err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// message
	if o.ShowMsg {
		io.Pf("> Running calculation of %q\n", o.Mdl.Name)
	}

	// run
	sd := *o.Sim
	sd.Verbose = sd.Verbose || o.ShowMsg
	o.results, err = Calculate(o.Mdl, &sd)
	return
}

// Results returns the results of the last successful pass; nil if there are none
func (o *Main) Results() *Results {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.results
}

// Status returns the message of the last pass: empty on success
func (o *Main) Status() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// onexit prints final message with cpu time and records the status
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {
	if prevErr != nil {
		o.results = nil
	}
	o.status = Status(prevErr)
	if o.ShowMsg {
		if prevErr == nil {
			if o.results.Singular {
				io.Pforan("> Warning: the structure is underconstrained; a least-squares solution was computed\n")
			}
			io.PfGreen("> Success\n")
			io.Pf("> CPU time = %v\n", time.Since(cputime))
		} else {
			io.PfRed("> Failed\n")
		}
	}
	return prevErr
}
