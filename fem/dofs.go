// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/wolfgang-alpha/TrussCalculator/inp"

// NumberDofs sets the location arrays (Umap) of all beams and returns the number of DOFs.
// Beams must be given in member-handle order. Lateral and axial DOFs are shared by all members
// meeting at a node; rotations are shared only at welded nodes
func NumberDofs(mdl *inp.Model, beams []*Beam) (ndof int, err error) {

	// check connectivity
	nodes := mdl.ActiveNodes()
	if len(nodes) == 0 || len(beams) == 0 {
		return 0, &EmptyModelError{}
	}
	for _, nod := range nodes {
		if len(nod.Members) == 0 {
			return 0, &UnconnectedNodeError{nod.Id}
		}
	}

	// reset
	mem2beam := make(map[int]*Beam)
	for _, b := range beams {
		for i := range b.Umap {
			b.Umap[i] = -1
		}
		mem2beam[b.Id] = b
	}

	// number
	for _, b := range beams {
		for end, n := range b.Nodes {
			nod := mdl.Nodes[n]
			for kind, slot := range EndSlots[end] {
				eq := -1
				shared := kind != 1 || nod.Joint == inp.Weld
				if shared && len(nod.Members) > 1 {
					eq = findSharedDof(nod, b, kind, mem2beam)
				}
				if eq < 0 {
					eq = ndof
					ndof++
				}
				b.Umap[slot] = eq
			}
		}
	}
	return
}

// findSharedDof returns the DOF of kind (0 => lateral, 1 => rotation, 2 => axial) already
// assigned to another member at node nod; -1 if none
func findSharedDof(nod *inp.Node, b *Beam, kind int, mem2beam map[int]*Beam) int {
	for _, mid := range nod.Members {
		if mid == b.Id {
			continue
		}
		other := mem2beam[mid]
		if other == nil {
			continue
		}
		end := 0
		if other.Nodes[0] != nod.Id {
			end = 1
		}
		if eq := other.Umap[EndSlots[end][kind]]; eq >= 0 {
			return eq
		}
	}
	return -1
}
