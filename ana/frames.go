// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

// Cantilever implements the solution of a cantilever clamped at x=0 with a transverse
// point load P at the free end x=L (Euler-Bernoulli theory)
//
//   |
//   |============================o  ↓ P
//   |<----------- L ------------>|
//
type Cantilever struct {
	P  float64 // point load at the tip (positive downwards)
	L  float64 // length
	EI float64 // bending stiffness
}

// Init initialises structure
func (o *Cantilever) Init(P, L, E, I float64) {
	o.P, o.L, o.EI = P, L, E*I
}

// Deflection returns the (downward) deflection at 0 ≤ x ≤ L
func (o Cantilever) Deflection(x float64) float64 {
	return o.P * x * x * (3.0*o.L - x) / (6.0 * o.EI)
}

// TipDeflection returns P L³ / (3 EI)
func (o Cantilever) TipDeflection() float64 {
	return o.P * o.L * o.L * o.L / (3.0 * o.EI)
}

// TipRotation returns the absolute value of the rotation at the tip: P L² / (2 EI)
func (o Cantilever) TipRotation() float64 {
	return o.P * o.L * o.L / (2.0 * o.EI)
}

// Reactions returns the vertical reaction and the clamping moment at x=0
func (o Cantilever) Reactions() (R, M float64) {
	return o.P, o.P * o.L
}

// SimplySupported implements the solution of a simply supported beam with a transverse point
// load P applied at distance a from the left support
//
//         ↓ P
//   o=====+===============o
//   ^ <-a->               ^
//   |<-------- L -------->|
//
type SimplySupported struct {
	P  float64 // point load (positive downwards)
	L  float64 // span
	A  float64 // position of the load
	EI float64 // bending stiffness
}

// Init initialises structure
func (o *SimplySupported) Init(P, L, a, E, I float64) {
	o.P, o.L, o.A, o.EI = P, L, a, E*I
}

// Reactions returns the vertical reactions at the left and right supports
func (o SimplySupported) Reactions() (Ra, Rb float64) {
	b := o.L - o.A
	return o.P * b / o.L, o.P * o.A / o.L
}

// LoadDeflection returns the (downward) deflection under the load: P a² b² / (3 EI L)
func (o SimplySupported) LoadDeflection() float64 {
	b := o.L - o.A
	return o.P * o.A * o.A * b * b / (3.0 * o.EI * o.L)
}

// MaxMoment returns the bending moment under the load: P a b / L
func (o SimplySupported) MaxMoment() float64 {
	return o.P * o.A * (o.L - o.A) / o.L
}

// AxialBar implements the solution of a bar fixed at one end and loaded axially at the other
type AxialBar struct {
	N  float64 // axial force (positive in tension)
	L  float64 // length
	EA float64 // axial stiffness
}

// Init initialises structure
func (o *AxialBar) Init(N, L, E, A float64) {
	o.N, o.L, o.EA = N, L, E*A
}

// Elongation returns N L / (EA)
func (o AxialBar) Elongation() float64 {
	return o.N * o.L / o.EA
}
