// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements reports, diagrams and archiving of calculation results
package out

import (
	"encoding/json"
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/wolfgang-alpha/TrussCalculator/fem"
)

// NodeSummary holds the results of one node
type NodeSummary struct {
	Id        int     `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Supported bool    `json:"supported"`
	Ux        float64 `json:"ux"`
	Uy        float64 `json:"uy"`
	Rz        float64 `json:"rz"`
	Fx        float64 `json:"fx,omitempty"`
	Fy        float64 `json:"fy,omitempty"`
	Mz        float64 `json:"mz,omitempty"`
}

// MemberSummary holds the results of one member
type MemberSummary struct {
	Id      int     `json:"id"`
	N0      int     `json:"n0"`
	N1      int     `json:"n1"`
	L       float64 `json:"L"`
	Angle   float64 `json:"angle"` // degrees
	N       float64 `json:"N"`     // axial force; positive in tension
	MaxAbsM float64 `json:"maxAbsM"`
	MaxAbsV float64 `json:"maxAbsV"`
}

// Summary holds the results of a calculation pass in a form suitable for reports and archives
type Summary struct {
	Name     string           `json:"name"`
	Ndof     int              `json:"ndof"`
	Singular bool             `json:"singular"`
	Cond     float64          `json:"cond"` // zero if it could not be estimated
	MinN     float64          `json:"minN"`
	MaxN     float64          `json:"maxN"`
	MaxAbsN  float64          `json:"maxAbsN"`
	MaxAbsU  float64          `json:"maxAbsU"`
	MaxAbsM  float64          `json:"maxAbsM"`
	SumFx    float64          `json:"sumFx"`
	SumFy    float64          `json:"sumFy"`
	Nodes    []*NodeSummary   `json:"nodes"`
	Members  []*MemberSummary `json:"members"`
}

// NewSummary collects the results of res
func NewSummary(res *fem.Results) (o *Summary) {
	nsta := res.Solver.Nstations
	o = &Summary{
		Name:     res.Model.Name,
		Ndof:     res.Ndof,
		Singular: res.Singular,
		Cond:     res.Cond,
		MinN:     res.MinN,
		MaxN:     res.MaxN,
		MaxAbsN:  res.MaxAbsN,
		MaxAbsU:  res.MaxAbsU,
	}
	if math.IsInf(o.Cond, 0) || math.IsNaN(o.Cond) {
		o.Cond = 0
	}
	_, o.MaxAbsM = res.AllBendingMom(nsta)
	o.SumFx, o.SumFy = res.Reactions()
	for _, r := range res.Nodes {
		o.Nodes = append(o.Nodes, &NodeSummary{
			Id: r.Id, X: r.X, Y: r.Y, Supported: r.Supported,
			Ux: r.Ux, Uy: r.Uy, Rz: r.Rz,
			Fx: r.Fx, Fy: r.Fy, Mz: r.Mz,
		})
	}
	for _, b := range res.Beams {
		m := &MemberSummary{
			Id: b.Id, N0: b.Nodes[0], N1: b.Nodes[1],
			L: b.L, Angle: b.Alpha * 180.0 / math.Pi, N: b.N,
		}
		V, M := b.CalcVandM(nsta)
		for i := range V {
			m.MaxAbsV = math.Max(m.MaxAbsV, math.Abs(V[i]))
			m.MaxAbsM = math.Max(m.MaxAbsM, math.Abs(M[i]))
		}
		o.Members = append(o.Members, m)
	}
	return
}

// JSON returns the summary as indented JSON
func (o *Summary) JSON() ([]byte, error) {
	return json.MarshalIndent(o, "", "  ")
}

// NodeTable returns a table with displacements and reactions of all nodes
func (o *Summary) NodeTable() (l string) {
	l = "\n==========================================================================================================\n"
	l += io.Sf("%6s%10s%10s%14s%14s%14s%14s%14s%14s\n", "node", "x", "y", "ux", "uy", "rz", "Fx", "Fy", "Mz")
	l += "----------------------------------------------------------------------------------------------------------\n"
	for _, r := range o.Nodes {
		l += io.Sf("%6d%10.4f%10.4f%14.6e%14.6e%14.6e", r.Id, r.X, r.Y, r.Ux, r.Uy, r.Rz)
		if r.Supported {
			l += io.Sf("%14.6e%14.6e%14.6e\n", r.Fx, r.Fy, r.Mz)
		} else {
			l += io.Sf("%14s%14s%14s\n", "-", "-", "-")
		}
	}
	l += "==========================================================================================================\n"
	return
}

// MemberTable returns a table with the internal forces of all members
func (o *Summary) MemberTable() (l string) {
	l = "\n==============================================================================================\n"
	l += io.Sf("%8s%6s%6s%12s%10s%18s%18s%18s\n", "member", "n0", "n1", "L", "angle", "N", "max|M|", "max|V|")
	l += "----------------------------------------------------------------------------------------------\n"
	for _, m := range o.Members {
		l += io.Sf("%8d%6d%6d%12.4f%10.2f%18.6e%18.6e%18.6e\n", m.Id, m.N0, m.N1, m.L, m.Angle, m.N, m.MaxAbsM, m.MaxAbsV)
	}
	l += "==============================================================================================\n"
	return
}

// Report returns the full text report of a calculation pass
//  withBcs -- include the list of boundary conditions
func Report(res *fem.Results, withBcs bool) (l string) {
	sum := NewSummary(res)
	l = io.Sf("structure             = %s\n", sum.Name)
	l += io.Sf("number of DOFs        = %d\n", sum.Ndof)
	l += io.Sf("condition number      = %g\n", res.Cond)
	if sum.Singular {
		l += "WARNING: the structure is underconstrained; displacements are a least-squares solution\n"
	}
	l += io.Sf("axial force: min/max  = %g / %g\n", sum.MinN, sum.MaxN)
	l += io.Sf("max |displacement|    = %g\n", sum.MaxAbsU)
	l += io.Sf("max |bending moment|  = %g\n", sum.MaxAbsM)
	l += io.Sf("sum of reactions      = (%g, %g)\n", sum.SumFx, sum.SumFy)
	l += sum.NodeTable()
	l += sum.MemberTable()
	if withBcs {
		l += res.Bcs.List()
	}
	return
}
