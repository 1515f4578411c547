// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/io"
	"github.com/wolfgang-alpha/TrussCalculator/inp"
)

// keys of DOF kinds ordered as EndSlots
var dofKeys = [3]string{"w", "φ", "u"}

// BoundaryCond holds the condition set on one DOF
type BoundaryCond struct {
	Eq    int     // DOF
	Node  int     // node handle
	Key   string  // "w" (lateral), "φ" (rotation) or "u" (axial)
	Known string  // "U" => displacement is known; "F" => force is known
	Value float64 // known value
}

// BoundaryConds holds all conditions of a calculation pass
type BoundaryConds struct {
	Bcs []*BoundaryCond // one entry per DOF
}

// Apply sets the known forces and known displacements of sys from the supports and loads of the
// nodes at the ends of all beams
//
//   support  lateral  rotation  axial
//   -------  -------  --------  -----
//   pinned   U=0      F=0       U=0
//   roller   U=0      F=0       F=0
//   fixed    U=0      U=0       U=0
//   none     F=-Fy    F=0       F=Fx
//
// The lateral axis points down. Applied moments are not available
func (o *BoundaryConds) Apply(mdl *inp.Model, beams []*Beam, sys *System) (err error) {

	// reset
	o.Bcs = o.Bcs[:0]
	for i := 0; i < sys.Ndof; i++ {
		sys.Fknown[i], sys.Uknown[i] = false, false
		sys.F[i], sys.U[i] = 0, 0
	}
	seen := make(map[int]bool)

	// set conditions at member ends
	for _, b := range beams {
		for end, n := range b.Nodes {
			nod := mdl.Nodes[n]
			fx, fy := nod.ResultingForce()
			var known [3]string
			var value [3]float64
			if nod.Support == nil {
				known = [3]string{"F", "F", "F"}
				value = [3]float64{-fy, 0, fx}
			} else {
				switch nod.Support.Kind {
				case inp.Pinned:
					known = [3]string{"U", "F", "U"}
				case inp.Roller:
					known = [3]string{"U", "F", "F"}
				case inp.Fixed:
					known = [3]string{"U", "U", "U"}
				}
			}
			for kind, slot := range EndSlots[end] {
				eq := b.Umap[slot]
				if known[kind] == "U" {
					sys.Uknown[eq], sys.U[eq] = true, value[kind]
				} else {
					sys.Fknown[eq], sys.F[eq] = true, value[kind]
				}
				if !seen[eq] {
					seen[eq] = true
					o.Bcs = append(o.Bcs, &BoundaryCond{eq, n, dofKeys[kind], known[kind], value[kind]})
				}
			}
		}
	}

	// check partition
	var nf, nu int
	for i := 0; i < sys.Ndof; i++ {
		if sys.Fknown[i] {
			nf++
		}
		if sys.Uknown[i] {
			nu++
		}
	}
	if nf+nu != sys.Ndof {
		return &PartitionConsistencyError{nf, nu, sys.Ndof}
	}
	for i := 0; i < sys.Ndof; i++ {
		if sys.Fknown[i] == sys.Uknown[i] {
			return &PartitionConsistencyError{nf, nu, sys.Ndof}
		}
	}
	return
}

// List returns a table with all conditions sorted by DOF
func (o *BoundaryConds) List() (l string) {
	sort.Slice(o.Bcs, func(i, j int) bool { return o.Bcs[i].Eq < o.Bcs[j].Eq })
	l = "\n==================================================================\n"
	l += io.Sf("%8s%8s%8s%8s%25s\n", "eq", "node", "key", "known", "value")
	l += "------------------------------------------------------------------\n"
	for _, bc := range o.Bcs {
		l += io.Sf("%8d%8d%8s%8s%25.13f\n", bc.Eq, bc.Node, bc.Key, bc.Known, bc.Value)
	}
	l += "==================================================================\n"
	return
}
