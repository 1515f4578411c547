// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/io"
	"github.com/wolfgang-alpha/TrussCalculator/inp"
)

// Domain holds the beams, DOFs and global system of one calculation pass
type Domain struct {

	// init: auxiliary variables
	ShowMsg bool            // show messages
	Sim     *inp.SolverData // solver data
	Mdl     *inp.Model      // snapshot of the structural model

	// beams
	Beams    []*Beam // active members in handle order
	Mem2beam []*Beam // [nmembers] member handle => beam. Removed members are 'nil'

	// system
	Ndof int           // total number of DOFs
	Sys  *System       // global system
	Bcs  BoundaryConds // boundary conditions
}

// NewDomain allocates a beam for every active member of a model snapshot
func NewDomain(mdl *inp.Model, sd *inp.SolverData) (o *Domain, err error) {
	o = &Domain{Sim: sd, Mdl: mdl, ShowMsg: sd.Verbose}
	o.Mem2beam = make([]*Beam, len(mdl.Members))
	for _, mem := range mdl.ActiveMembers() {
		b, err := NewBeam(mdl, mem)
		if err != nil {
			return nil, err
		}
		o.Beams = append(o.Beams, b)
		o.Mem2beam[mem.Id] = b
	}
	return
}

// SetDofs numbers the DOFs and assembles the global stiffness matrix
func (o *Domain) SetDofs() (err error) {
	o.Ndof, err = NumberDofs(o.Mdl, o.Beams)
	if err != nil {
		return
	}
	o.Sys = NewSystem(o.Ndof, AssembleK(o.Ndof, o.Beams))
	if o.ShowMsg {
		io.Pf("> DOFs numbered (ndof = %d)\n", o.Ndof)
		io.Pf("> Global stiffness matrix assembled\n")
	}
	return
}

// SetBcs applies supports and loads to the global system
func (o *Domain) SetBcs() (err error) {
	err = o.Bcs.Apply(o.Mdl, o.Beams, o.Sys)
	if err != nil {
		return
	}
	if o.ShowMsg {
		io.Pf("> Boundary conditions set\n")
	}
	return
}

// Solve solves the global system and updates the beams
func (o *Domain) Solve() (singular bool, cond float64, err error) {
	singular, cond, err = SolvePartitioned(o.Sys, o.Sim)
	if err != nil {
		return
	}
	for _, b := range o.Beams {
		b.SetSolution(o.Sys.U, o.Sim.ZeroTol)
	}
	if o.ShowMsg {
		io.Pf("> System solved (cond = %g)\n", cond)
	}
	return
}
