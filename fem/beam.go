// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/wolfgang-alpha/TrussCalculator/inp"
	"gonum.org/v1/gonum/mat"
)

// local slots of a member. The lateral axis points to the right of the member axis (down for a
// member drawn from left to right); rotations are counter-clockwise
const (
	SlotW1 = 0 // lateral displacement @ end 1
	SlotP1 = 1 // rotation @ end 1
	SlotW2 = 2 // lateral displacement @ end 2
	SlotP2 = 3 // rotation @ end 2
	SlotU1 = 4 // axial displacement @ end 1
	SlotU2 = 5 // axial displacement @ end 2
)

// EndSlots holds the slots of each end ordered as {lateral, rotation, axial}
var EndSlots = [2][3]int{
	{SlotW1, SlotP1, SlotU1},
	{SlotW2, SlotP2, SlotU2},
}

// Beam represents a plane frame member (Euler-Bernoulli, linear elastic)
//
//          w (lateral; right of the axis)
//          |
//          v              Props:  Nodes:
//   (0)-----------------------------(1)------> u (axial)
//    φ1 ↺                            φ2 ↺
//
type Beam struct {

	// basic data
	Id    int           // member handle
	Nodes [2]int        // handles of nodes @ ends 1 and 2
	X     [2][2]float64 // nodal coordinates [end][x or y]

	// parameters and properties
	E     float64 // Young's modulus
	A     float64 // cross-sectional area
	I     float64 // second moment of area
	L     float64 // (derived) length of beam
	Alpha float64 // (derived) angle of the axis measured from +x [rad]

	// matrices
	T  *mat.Dense // [6][6] global-to-local transformation matrix
	Kl *mat.Dense // [6][6] local K matrix
	K  *mat.Dense // [6][6] global K matrix

	// problem variables
	Umap []int // [6] slot => DOF (location array). -1 means unassigned

	// results
	U  []float64 // [6] displacements; lateral slots with y pointing up
	N  float64   // axial force; positive in tension
	ua []float64 // [6] displacements aligned with the member
}

// NewBeam returns a new beam for a member of mdl
func NewBeam(mdl *inp.Model, mem *inp.Member) (o *Beam, err error) {
	o = new(Beam)
	o.Id = mem.Id
	o.Nodes = [2]int{mem.N0, mem.N1}
	for m, n := range o.Nodes {
		nod := mdl.Nodes[n]
		o.X[m] = [2]float64{nod.X, nod.Y}
	}
	o.E, o.A, o.I = mem.E, mem.A, mem.I
	o.T = mat.NewDense(6, 6, nil)
	o.Kl = mat.NewDense(6, 6, nil)
	o.K = mat.NewDense(6, 6, nil)
	o.Umap = []int{-1, -1, -1, -1, -1, -1}
	o.U = make([]float64, 6)
	o.ua = make([]float64, 6)
	if err = o.Recompute(); err != nil {
		return nil, err
	}
	return
}

// Recompute re-compute matrices after coordinates or parameters are externally changed
func (o *Beam) Recompute() (err error) {

	// geometry
	dx := o.X[1][0] - o.X[0][0]
	dy := o.X[1][1] - o.X[0][1]
	l := math.Sqrt(dx*dx + dy*dy)
	if !(l > 0) {
		return &DegenerateMemberError{o.Id}
	}
	o.L = l
	o.Alpha = math.Atan2(dy, dx)
	c := math.Cos(o.Alpha)
	s := math.Sin(o.Alpha)

	// T
	o.T.Zero()
	o.T.Set(SlotW1, SlotW1, c)
	o.T.Set(SlotW1, SlotU1, s)
	o.T.Set(SlotP1, SlotP1, 1)
	o.T.Set(SlotW2, SlotW2, c)
	o.T.Set(SlotW2, SlotU2, s)
	o.T.Set(SlotP2, SlotP2, 1)
	o.T.Set(SlotU1, SlotW1, -s)
	o.T.Set(SlotU1, SlotU1, c)
	o.T.Set(SlotU2, SlotW2, -s)
	o.T.Set(SlotU2, SlotU2, c)

	// aux vars
	ll := l * l
	m := o.E * o.A / l
	n := o.E * o.I / (ll * l)

	// Kl: bending
	o.Kl.Zero()
	o.Kl.Set(0, 0, 12*n)
	o.Kl.Set(0, 1, -6*l*n)
	o.Kl.Set(0, 2, -12*n)
	o.Kl.Set(0, 3, -6*l*n)
	o.Kl.Set(1, 0, -6*l*n)
	o.Kl.Set(1, 1, 4*ll*n)
	o.Kl.Set(1, 2, 6*l*n)
	o.Kl.Set(1, 3, 2*ll*n)
	o.Kl.Set(2, 0, -12*n)
	o.Kl.Set(2, 1, 6*l*n)
	o.Kl.Set(2, 2, 12*n)
	o.Kl.Set(2, 3, 6*l*n)
	o.Kl.Set(3, 0, -6*l*n)
	o.Kl.Set(3, 1, 2*ll*n)
	o.Kl.Set(3, 2, 6*l*n)
	o.Kl.Set(3, 3, 4*ll*n)

	// Kl: axial
	o.Kl.Set(4, 4, m)
	o.Kl.Set(4, 5, -m)
	o.Kl.Set(5, 4, -m)
	o.Kl.Set(5, 5, m)

	// K := trans(T) * Kl * T
	o.K.Product(o.T.T(), o.Kl, o.T)
	return
}

// SetSolution computes the member results from the global vector of displacements u (lateral
// DOFs pointing down). Displayed values and the axial force smaller than zerotol are set to zero
func (o *Beam) SetSolution(u []float64, zerotol float64) {

	// element displacements
	d := make([]float64, 6)
	for i, I := range o.Umap {
		d[i] = u[I]
	}

	// aligned displacements
	for i := 0; i < 6; i++ {
		o.ua[i] = 0
		for j := 0; j < 6; j++ {
			o.ua[i] += o.T.At(i, j) * d[j]
		}
	}

	// displayed displacements
	for i := 0; i < 6; i++ {
		v := d[i]
		if i == SlotW1 || i == SlotW2 {
			v = -v
		}
		if math.Abs(v) < zerotol {
			v = 0
		}
		o.U[i] = v
	}

	// axial force
	o.N = o.E * o.A * (o.ua[SlotU2] - o.ua[SlotU1]) / o.L
	if math.Abs(o.N) < zerotol {
		o.N = 0
	}
}

// Lateral returns the deflection @ 0 ≤ x ≤ L measured along the left normal of the axis
// (upwards for a member drawn from left to right)
func (o *Beam) Lateral(x float64) float64 {
	v1, φ1, v2, φ2 := -o.ua[SlotW1], o.ua[SlotP1], -o.ua[SlotW2], o.ua[SlotP2]
	ξ := x / o.L
	ξξ := ξ * ξ
	ξξξ := ξξ * ξ
	N1 := 1 - 3*ξξ + 2*ξξξ
	N2 := x * (1 - ξ) * (1 - ξ)
	N3 := 3*ξξ - 2*ξξξ
	N4 := x * (ξξ - ξ)
	return N1*v1 + N2*φ1 + N3*v2 + N4*φ2
}

// Axial returns the displacement along the axis @ 0 ≤ x ≤ L
func (o *Beam) Axial(x float64) float64 {
	ξ := x / o.L
	return (1-ξ)*o.ua[SlotU1] + ξ*o.ua[SlotU2]
}

// Shear returns the shear force; constant along the member
func (o *Beam) Shear(x float64) float64 {
	v1, θ1, v2, θ2 := -o.ua[SlotW1], o.ua[SlotP1], -o.ua[SlotW2], o.ua[SlotP2]
	l := o.L
	ll := l * l
	lll := ll * l
	return o.E * o.I * ((12.0*v1)/lll + (6.0*θ1)/ll - (12.0*v2)/lll + (6.0*θ2)/ll)
}

// Moment returns the bending moment @ 0 ≤ x ≤ L
func (o *Beam) Moment(x float64) float64 {
	v1, θ1, v2, θ2 := -o.ua[SlotW1], o.ua[SlotP1], -o.ua[SlotW2], o.ua[SlotP2]
	r := x
	l := o.L
	ll := l * l
	lll := ll * l
	return o.E * o.I * (v1*((12.0*r)/lll-6.0/ll) + θ1*((6.0*r)/ll-4.0/l) + v2*(6.0/ll-(12.0*r)/lll) + θ2*((6.0*r)/ll-2.0/l))
}

// Stations returns nstations equally spaced positions along the member, ends included
func (o *Beam) Stations(nstations int) (x []float64) {
	if nstations < 2 {
		nstations = 2
	}
	x = make([]float64, nstations)
	dx := o.L / float64(nstations-1)
	for i := 0; i < nstations; i++ {
		x[i] = float64(i) * dx
	}
	x[nstations-1] = o.L
	return
}

// CalcVandM calculates shear forces and bending moments @ stations
func (o *Beam) CalcVandM(nstations int) (V, M []float64) {
	xs := o.Stations(nstations)
	V = make([]float64, len(xs))
	M = make([]float64, len(xs))
	for i, x := range xs {
		V[i], M[i] = o.Shear(x), o.Moment(x)
	}
	return
}

// Point returns the coordinates of the point @ 0 ≤ x ≤ L on the undeformed axis
func (o *Beam) Point(x float64) (px, py float64) {
	ξ := x / o.L
	return (1-ξ)*o.X[0][0] + ξ*o.X[1][0], (1-ξ)*o.X[0][1] + ξ*o.X[1][1]
}
