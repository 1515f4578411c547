// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// CoincidenceTable returns the global DOFs of the six slots of each beam
func CoincidenceTable(beams []*Beam) (table [][]int) {
	table = make([][]int, len(beams))
	for i, b := range beams {
		table[i] = append([]int(nil), b.Umap...)
	}
	return
}

// AssembleK adds the K matrices of all beams into the global [ndof][ndof] stiffness matrix
func AssembleK(ndof int, beams []*Beam) (K *mat.Dense) {
	K = mat.NewDense(ndof, ndof, nil)
	for _, b := range beams {
		for i, I := range b.Umap {
			if I < 0 || I >= ndof {
				chk.Panic("beam %d: slot %d has invalid DOF %d", b.Id, i, I)
			}
			for j, J := range b.Umap {
				K.Set(I, J, K.At(I, J)+b.K.At(i, j))
			}
		}
	}
	return
}
