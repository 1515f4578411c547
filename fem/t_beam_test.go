// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/wolfgang-alpha/TrussCalculator/ana"
	"github.com/wolfgang-alpha/TrussCalculator/inp"
	"gonum.org/v1/gonum/mat"
)

func verbose() {
	chk.Verbose = true
}

// dense2mat converts a gonum matrix into a slice of slices
func dense2mat(a *mat.Dense) (m [][]float64) {
	r, c := a.Dims()
	m = make([][]float64, r)
	for i := 0; i < r; i++ {
		m[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			m[i][j] = a.At(i, j)
		}
	}
	return
}

// newTestBeam returns a beam connecting (x0,y0) to (x1,y1)
func newTestBeam(tst *testing.T, x0, y0, x1, y1, E, A, I float64) *Beam {
	mdl := inp.NewModel("beam")
	a := mdl.AddNode(x0, y0, inp.Hinge)
	b := mdl.AddNode(x1, y1, inp.Hinge)
	mid, err := mdl.AddMember(a, b, E, A, I)
	if err != nil {
		tst.Fatalf("AddMember failed:\n%v", err)
	}
	beam, err := NewBeam(mdl, mdl.Members[mid])
	if err != nil {
		tst.Fatalf("NewBeam failed:\n%v", err)
	}
	return beam
}

func Test_beam01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("beam01. stiffness of horizontal member")

	E, A, I, l := 100.0, 2.0, 3.0, 2.0
	b := newTestBeam(tst, 1, 1, 1+l, 1, E, A, I)
	chk.Float64(tst, "L", 1e-15, b.L, l)
	chk.Float64(tst, "α", 1e-15, b.Alpha, 0)

	EI, EA := E*I, E*A
	ll, lll := l*l, l*l*l
	Kcorrect := [][]float64{
		{12 * EI / lll, -6 * EI / ll, -12 * EI / lll, -6 * EI / ll, 0, 0},
		{-6 * EI / ll, 4 * EI / l, 6 * EI / ll, 2 * EI / l, 0, 0},
		{-12 * EI / lll, 6 * EI / ll, 12 * EI / lll, 6 * EI / ll, 0, 0},
		{-6 * EI / ll, 2 * EI / l, 6 * EI / ll, 4 * EI / l, 0, 0},
		{0, 0, 0, 0, EA / l, -EA / l},
		{0, 0, 0, 0, -EA / l, EA / l},
	}
	chk.Deep2(tst, "Kl", 1e-13, dense2mat(b.Kl), Kcorrect)
	chk.Deep2(tst, "K", 1e-13, dense2mat(b.K), Kcorrect)
}

func Test_beam02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("beam02. stiffness of vertical and inclined members")

	E, A, I, l := 100.0, 2.0, 3.0, 2.0
	EI, EA := E*I, E*A

	// vertical: global x moves the member sideways; global W moves it along the axis
	b := newTestBeam(tst, 0, 0, 0, l, E, A, I)
	chk.Float64(tst, "α", 1e-15, b.Alpha, math.Pi/2)
	K := dense2mat(b.K)
	io.Pforan("K = %v\n", K)
	chk.Float64(tst, "K[w1][w1]", 1e-12, K[SlotW1][SlotW1], EA/l)
	chk.Float64(tst, "K[u1][u1]", 1e-12, K[SlotU1][SlotU1], 12*EI/(l*l*l))
	chk.Float64(tst, "K[p1][p1]", 1e-12, K[SlotP1][SlotP1], 4*EI/l)

	// inclined: K is symmetric and has rigid body modes
	b = newTestBeam(tst, 0, 0, 3, 4, E, A, I)
	chk.Float64(tst, "L", 1e-15, b.L, 5)
	K = dense2mat(b.K)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			chk.Float64(tst, io.Sf("K[%d][%d] symmetry", i, j), 1e-12, K[i][j], K[j][i])
		}
	}
	trans := []float64{1, 0, 1, 0, 0, 0} // translation of both nodes along W
	for i := 0; i < 6; i++ {
		var f float64
		for j := 0; j < 6; j++ {
			f += K[i][j] * trans[j]
		}
		chk.Float64(tst, io.Sf("rigid body force @ %d", i), 1e-12, f, 0)
	}

	// zero length
	mdl := inp.NewModel("degenerate")
	mdl.AddNode(1, 1, inp.Hinge)
	mdl.AddNode(1, 1, inp.Hinge)
	mdl.AddMember(0, 1, E, A, I)
	if _, err := NewBeam(mdl, mdl.Members[0]); err == nil {
		tst.Errorf("zero-length member should fail")
	} else if _, ok := err.(*DegenerateMemberError); !ok {
		tst.Errorf("error should be DegenerateMemberError. got %T", err)
	}
}

func Test_beam03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("beam03. deflection, moment and shear from end displacements")

	// cantilever solution imposed directly
	P, l, E, I := 1000.0, 2.0, 210e9, 1e-6
	var sol ana.Cantilever
	sol.Init(P, l, E, I)

	b := newTestBeam(tst, 0, 0, l, 0, E, 1e-3, I)
	copy(b.Umap, []int{0, 1, 2, 3, 4, 5})
	u := []float64{0, 0, sol.TipDeflection(), -sol.TipRotation(), 0, 0} // lateral DOFs point down
	b.SetSolution(u, 1e-12)

	chk.Array(tst, "U", 1e-15, b.U, []float64{0, 0, -sol.TipDeflection(), -sol.TipRotation(), 0, 0})
	chk.Float64(tst, "N", 1e-15, b.N, 0)
	for _, x := range b.Stations(11) {
		chk.Float64(tst, io.Sf("w(%g)", x), 1e-15, b.Lateral(x), -sol.Deflection(x))
		chk.Float64(tst, io.Sf("u(%g)", x), 1e-15, b.Axial(x), 0)
	}
	R, M := sol.Reactions()
	chk.Float64(tst, "V", 1e-9, b.Shear(0), R)
	chk.Float64(tst, "M(0)", 1e-9, b.Moment(0), -M)
	chk.Float64(tst, "M(L)", 1e-9, b.Moment(l), 0)
	V, Ms := b.CalcVandM(3)
	chk.Array(tst, "V @ stations", 1e-9, V, []float64{R, R, R})
	chk.Array(tst, "M @ stations", 1e-9, Ms, []float64{-M, -M / 2, 0})

	// zero tolerance
	u = []float64{1e-13, 0, 0, 2e-13, 1e-3, 0}
	b.SetSolution(u, 1e-12)
	chk.Array(tst, "U snapped", 1e-17, b.U, []float64{0, 0, 0, 0, 1e-3, 0})

	// axial
	var bar ana.AxialBar
	bar.Init(2100, l, E, 1e-3)
	u = []float64{0, 0, 0, 0, 0, bar.Elongation()}
	b.SetSolution(u, 1e-12)
	chk.Float64(tst, "N", 1e-9, b.N, 2100)
	chk.Float64(tst, "u(L/2)", 1e-17, b.Axial(l/2), bar.Elongation()/2)

	// stations
	xs := b.Stations(5)
	chk.Array(tst, "stations", 1e-15, xs, []float64{0, 0.5, 1, 1.5, 2})
	px, py := b.Point(0.5)
	chk.Float64(tst, "px", 1e-15, px, 0.5)
	chk.Float64(tst, "py", 1e-15, py, 0)
}

func Test_beam04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("beam04. local displacements of inclined member")

	// member @ 90°: global x displacement is lateral (to the left of the axis => v = -ux)
	b := newTestBeam(tst, 0, 0, 0, 2, 1, 1, 1)
	copy(b.Umap, []int{0, 1, 2, 3, 4, 5})
	u := []float64{-0.5, 0, -0.5, 0, 0.3, 0.3} // both nodes: W=-0.5 (up) and ux=0.3
	b.SetSolution(u, 1e-12)
	chk.Float64(tst, "axial @ 0", 1e-15, b.Axial(0), 0.5)
	chk.Float64(tst, "axial @ L", 1e-15, b.Axial(2), 0.5)
	chk.Float64(tst, "lateral @ 1", 1e-15, b.Lateral(1), -0.3)
	chk.Float64(tst, "N", 1e-15, b.N, 0)
	chk.Array(tst, "U", 1e-15, b.U, []float64{0.5, 0, 0.5, 0, 0.3, 0.3})
}
