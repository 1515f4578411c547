// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/wolfgang-alpha/TrussCalculator/inp"
	"gonum.org/v1/gonum/mat"
)

// System holds the global system of equations K U = F. For each DOF i, either F[i] is known
// (and U[i] is solved for) or U[i] is known (and F[i] is a reaction)
type System struct {
	Ndof   int        // number of DOFs
	K      *mat.Dense // [ndof][ndof] global stiffness matrix
	F      []float64  // [ndof] forces
	U      []float64  // [ndof] displacements
	Fknown []bool     // [ndof] force is known
	Uknown []bool     // [ndof] displacement is known
}

// NewSystem allocates a new system
func NewSystem(ndof int, K *mat.Dense) (o *System) {
	o = &System{Ndof: ndof, K: K}
	o.F = make([]float64, ndof)
	o.U = make([]float64, ndof)
	o.Fknown = make([]bool, ndof)
	o.Uknown = make([]bool, ndof)
	return
}

// SolvePartitioned solves the system partitioned into DOFs with known forces (a) and DOFs with
// known displacements (b):
//
//   ┌          ┐ ┌    ┐   ┌    ┐
//   │ Kaa  Kab │ │ Ua │   │ Fa │        Ua = Kaa⁻¹ (Fa - Kab Ub)
//   │          │ │    │ = │    │   =>
//   │ Kba  Kbb │ │ Ub │   │ Fb │        Fb = Kba Ua + Kbb Ub
//   └          ┘ └    ┘   └    ┘
//
// If Kaa is singular or its condition number exceeds sd.CondMax, a least-squares solution is
// computed with the pseudo-inverse (singular = true) or, with the "fail" policy,
// UnderconstrainedError is returned
func SolvePartitioned(sys *System, sd *inp.SolverData) (singular bool, cond float64, err error) {

	// partition
	var a, b []int
	for i := 0; i < sys.Ndof; i++ {
		if sys.Fknown[i] {
			a = append(a, i)
		} else {
			b = append(b, i)
		}
	}
	na := len(a)

	// solve for unknown displacements
	if na > 0 {
		Kaa := mat.NewDense(na, na, nil)
		rhs := mat.NewVecDense(na, nil)
		for i, I := range a {
			v := sys.F[I]
			for _, J := range b {
				v -= sys.K.At(I, J) * sys.U[J]
			}
			rhs.SetVec(i, v)
			for j, J := range a {
				Kaa.Set(i, j, sys.K.At(I, J))
			}
		}
		var ua *mat.VecDense
		ua, cond, err = solveLU(Kaa, rhs, sd.CondMax)
		if err != nil {
			if sd.Singular == "fail" {
				return false, cond, &UnderconstrainedError{cond}
			}
			if sd.Verbose {
				io.Pforan("> Kaa is singular (cond = %g). Using pseudo-inverse\n", cond)
			}
			singular, err = true, nil
			ua = solvePinv(Kaa, rhs)
		}
		for i, I := range a {
			sys.U[I] = ua.AtVec(i)
		}
	}

	// reactions
	for _, I := range b {
		v := 0.0
		for J := 0; J < sys.Ndof; J++ {
			v += sys.K.At(I, J) * sys.U[J]
		}
		sys.F[I] = v
	}
	return
}

// solveLU solves A x = rhs with the LU decomposition; returns an error if A is singular or
// ill-conditioned
func solveLU(A *mat.Dense, rhs *mat.VecDense, condMax float64) (x *mat.VecDense, cond float64, err error) {
	var lu mat.LU
	lu.Factorize(A)
	cond = lu.Cond()
	if math.IsInf(cond, 0) || math.IsNaN(cond) || cond > condMax {
		return nil, cond, mat.Condition(cond)
	}
	x = mat.NewVecDense(rhs.Len(), nil)
	if err = lu.SolveVecTo(x, false, rhs); err != nil {
		return nil, cond, err
	}
	return
}

// solvePinv returns the minimum-norm least-squares solution x = A⁺ rhs
func solvePinv(A *mat.Dense, rhs *mat.VecDense) (x *mat.VecDense) {
	n := rhs.Len()
	x = mat.NewVecDense(n, nil)
	var svd mat.SVD
	if ok := svd.Factorize(A, mat.SVDThin); !ok {
		return
	}
	s := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	if len(s) == 0 || s[0] == 0 {
		return
	}
	tol := s[0] * float64(n) * 2.220446049250313e-16
	for k, sk := range s {
		if sk <= tol {
			continue
		}
		var c float64 // c = u_kᵀ rhs / s_k
		for i := 0; i < n; i++ {
			c += u.At(i, k) * rhs.AtVec(i)
		}
		c /= sk
		for j := 0; j < n; j++ {
			x.SetVec(j, x.AtVec(j)+c*v.At(j, k))
		}
	}
	return
}
