// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/wolfgang-alpha/TrussCalculator/fem"
)

// Diagram holds the values along one member @ stations
type Diagram struct {
	Member  int       `json:"member"`  // member handle
	X       []float64 `json:"x"`       // local coordinates of stations
	Px      []float64 `json:"px"`      // global x-coordinates of stations
	Py      []float64 `json:"py"`      // global y-coordinates of stations
	Lateral []float64 `json:"lateral"` // lateral deflection; positive to the left of the axis
	Axial   []float64 `json:"axial"`   // axial displacement
	Moment  []float64 `json:"moment"`  // bending moment
	Shear   []float64 `json:"shear"`   // shear force
}

// BeamDiagram samples one member @ nstations stations
func BeamDiagram(res *fem.Results, member, nstations int) (o *Diagram, err error) {
	b := res.Beam(member)
	if b == nil {
		return nil, chk.Err("member %d does not exist", member)
	}
	if nstations < 2 {
		return nil, chk.Err("number of stations must be at least 2. %d is invalid", nstations)
	}
	o = &Diagram{Member: member, X: b.Stations(nstations)}
	n := len(o.X)
	o.Px, o.Py = make([]float64, n), make([]float64, n)
	o.Lateral, o.Axial = make([]float64, n), make([]float64, n)
	o.Moment, o.Shear = make([]float64, n), make([]float64, n)
	for i, x := range o.X {
		o.Px[i], o.Py[i] = b.Point(x)
		o.Lateral[i] = b.Lateral(x)
		o.Axial[i] = b.Axial(x)
		o.Moment[i] = b.Moment(x)
		o.Shear[i] = b.Shear(x)
	}
	return
}

// BeamDiagrams samples all members
func BeamDiagrams(res *fem.Results, nstations int) (all []*Diagram, err error) {
	for _, b := range res.Beams {
		d, err := BeamDiagram(res, b.Id, nstations)
		if err != nil {
			return nil, err
		}
		all = append(all, d)
	}
	return
}

// MomentScale computes the factor to draw bending moment diagrams over the structure
//  Input:
//   coef -- coefficient to scale max(dimension) divided by max(M); e.g. 0.1
//  Note: returns 1 if all moments are negligible
func MomentScale(res *fem.Results, nstations int, coef float64) (sf float64) {
	_, maxAbsM := res.AllBendingMom(nstations)
	xmin, xmax, ymin, ymax := bounds(res)
	dist := utl.Max(xmax-xmin, ymax-ymin)
	sf = 1.0
	if maxAbsM > 1e-7 {
		sf = coef * dist / maxAbsM
	}
	return
}

// MaxAbs returns the largest absolute value of a diagram quantity: "lateral", "axial", "moment"
// or "shear"
func (o *Diagram) MaxAbs(key string) (res float64) {
	for _, v := range o.values(key) {
		res = utl.Max(res, math.Abs(v))
	}
	return
}

// Table returns the values @ stations as text
//  numfmt -- number format for values. use "" for default
func (o *Diagram) Table(numfmt string) (l string) {
	if numfmt == "" {
		numfmt = "%14.6e"
	}
	l = io.Sf("member %d\n", o.Member)
	l += io.Sf("%10s%14s%14s%14s%14s%14s%14s\n", "x", "px", "py", "lateral", "axial", "moment", "shear")
	for i, x := range o.X {
		l += io.Sf("%10.4f%14.4f%14.4f", x, o.Px[i], o.Py[i])
		l += io.Sf(numfmt+numfmt+numfmt+numfmt+"\n", o.Lateral[i], o.Axial[i], o.Moment[i], o.Shear[i])
	}
	return
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

func (o *Diagram) values(key string) []float64 {
	switch key {
	case "lateral":
		return o.Lateral
	case "axial":
		return o.Axial
	case "moment":
		return o.Moment
	case "shear":
		return o.Shear
	}
	chk.Panic("cannot find diagram quantity %q", key)
	return nil
}

// bounds returns the bounding box of the active nodes
func bounds(res *fem.Results) (xmin, xmax, ymin, ymax float64) {
	for i, r := range res.Nodes {
		if i == 0 {
			xmin, xmax, ymin, ymax = r.X, r.X, r.Y, r.Y
		}
		xmin, xmax = utl.Min(xmin, r.X), utl.Max(xmax, r.X)
		ymin, ymax = utl.Min(ymin, r.Y), utl.Max(ymax, r.Y)
	}
	return
}
