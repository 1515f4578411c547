// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/utl"
	"github.com/wolfgang-alpha/TrussCalculator/inp"
)

// NodeResult holds the displacements and reactions of a node. Reactions are zero at free nodes
type NodeResult struct {
	Id        int     // node handle
	X, Y      float64 // coordinates
	Supported bool    // node has a support
	Ux, Uy    float64 // displacements; y points up
	Rz        float64 // rotation (counter-clockwise) of the first incident member
	Fx, Fy    float64 // reaction forces; y points up
	Mz        float64 // reaction moment; sum over the rotations of the node
}

// Results holds the outcome of one calculation pass
type Results struct {
	Model    *inp.Model      // snapshot of the model used in the calculation
	Solver   *inp.SolverData // solver data used in the calculation
	Ndof     int             // number of DOFs
	Sys      *System         // solved global system
	Bcs      BoundaryConds   // boundary conditions
	Beams    []*Beam         // results of active members in handle order
	Nodes    []*NodeResult   // results of active nodes in handle order
	Singular bool            // K_aa was singular; displacements are a least-squares solution
	Cond     float64         // estimated condition number of K_aa

	// extreme values
	MinN    float64 // smallest axial force (largest compression)
	MaxN    float64 // largest axial force (largest tension)
	MaxAbsN float64 // largest absolute axial force
	MaxAbsU float64 // largest absolute axial or lateral displacement @ stations

	// auxiliary
	mem2beam []*Beam
	nod2res  []*NodeResult
}

// newResults collects the results of a solved domain
func newResults(dom *Domain, singular bool, cond float64) (o *Results) {
	o = &Results{
		Model:    dom.Mdl,
		Solver:   dom.Sim,
		Ndof:     dom.Ndof,
		Sys:      dom.Sys,
		Bcs:      dom.Bcs,
		Beams:    dom.Beams,
		Singular: singular,
		Cond:     cond,
		mem2beam: dom.Mem2beam,
	}

	// nodes
	zero := func(v float64) float64 {
		if math.Abs(v) < dom.Sim.ZeroTol {
			return 0
		}
		return v
	}
	o.nod2res = make([]*NodeResult, len(dom.Mdl.Nodes))
	for _, nod := range dom.Mdl.ActiveNodes() {
		res := &NodeResult{Id: nod.Id, X: nod.X, Y: nod.Y, Supported: nod.Support != nil}
		rotations := make(map[int]bool)
		for k, mid := range nod.Members {
			b := dom.Mem2beam[mid]
			end := 0
			if b.Nodes[0] != nod.Id {
				end = 1
			}
			w, φ, u := b.Umap[EndSlots[end][0]], b.Umap[EndSlots[end][1]], b.Umap[EndSlots[end][2]]
			if k == 0 {
				res.Ux = zero(dom.Sys.U[u])
				res.Uy = zero(-dom.Sys.U[w])
				res.Rz = zero(dom.Sys.U[φ])
				if res.Supported {
					res.Fx = zero(dom.Sys.F[u])
					res.Fy = zero(-dom.Sys.F[w])
				}
			}
			if res.Supported && !rotations[φ] {
				rotations[φ] = true
				res.Mz += dom.Sys.F[φ]
			}
		}
		res.Mz = zero(res.Mz)
		o.Nodes = append(o.Nodes, res)
		o.nod2res[nod.Id] = res
	}

	// extreme values
	for i, b := range o.Beams {
		if i == 0 {
			o.MinN, o.MaxN = b.N, b.N
		}
		o.MinN = utl.Min(o.MinN, b.N)
		o.MaxN = utl.Max(o.MaxN, b.N)
		o.MaxAbsN = utl.Max(o.MaxAbsN, math.Abs(b.N))
		for _, x := range b.Stations(dom.Sim.Nstations) {
			o.MaxAbsU = utl.Max(o.MaxAbsU, math.Abs(b.Axial(x)))
			o.MaxAbsU = utl.Max(o.MaxAbsU, math.Abs(b.Lateral(x)))
		}
	}
	return
}

// Beam returns the results of a member
//  Note: returns nil if the member does not exist
func (o *Results) Beam(member int) *Beam {
	if member < 0 || member >= len(o.mem2beam) {
		return nil
	}
	return o.mem2beam[member]
}

// Node returns the results of a node
//  Note: returns nil if the node does not exist
func (o *Results) Node(node int) *NodeResult {
	if node < 0 || node >= len(o.nod2res) {
		return nil
	}
	return o.nod2res[node]
}

// AllBendingMom computes the bending moments of all beams @ stations
//  Output:
//   allM    -- [nbeams][nstations] bending moments
//   maxAbsM -- largest absolute bending moment
func (o *Results) AllBendingMom(nstations int) (allM [][]float64, maxAbsM float64) {
	allM = make([][]float64, len(o.Beams))
	for i, b := range o.Beams {
		_, allM[i] = b.CalcVandM(nstations)
		for _, m := range allM[i] {
			maxAbsM = utl.Max(maxAbsM, math.Abs(m))
		}
	}
	return
}

// Reactions returns the sum of all reaction forces
func (o *Results) Reactions() (sumFx, sumFy float64) {
	for _, r := range o.Nodes {
		sumFx += r.Fx
		sumFy += r.Fy
	}
	return
}
