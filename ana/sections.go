// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions and reference data for plane frames
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// CrossSection computes the cross-sectional properties needed by plane frame members
//
//         y (in-plane, lateral)
//         ^
//         |                                 bending happens about z
//         o-------------------------------o (out-of-plane axis)
//         |                               |
//         |                               |
//        (z)------------------------------o-------> x (member axis)
//
//   typ : rectangle
//         circle                             tw
//         I-beam                         -->| |<--
//                                    ___    | |     ___
//   ^ y       +-------+            tf |   ########   |
//   |         |       |              ---  ########   |
//   |         |       |                      ##      |
//   +----> z  |       | h = hei              ##      | h = hei
//             |       |                      ##      |
//             |       |              ---  ########   |
//             +-------+            tf_|_  ########  ---
//              b = wid                    b = wid
//
type CrossSection struct {

	// input
	Type string  // "rectangle", "I-beam" or "circle"
	Unit string  // unit of length
	Wid  float64 // width (b) if not circular
	Hei  float64 // height (h) if not circular
	Tf   float64 // flange thickness if I-beam
	Tw   float64 // web thickness if I-beam
	R    float64 // radius if circular

	// derived
	A    float64 // cross-sectional area
	I    float64 // second moment of area about z (in-plane bending)
	Imin float64 // second moment of area about y (out-of-plane; reported only)
}

// Init initialises structure and computes the second moments of area
func (o *CrossSection) Init(typ, unitLen string, wid, hei, tf, tw, rad float64) (err error) {

	// input data
	o.Type, o.Unit, o.Wid, o.Hei, o.Tf, o.Tw, o.R = typ, unitLen, wid, hei, tf, tw, rad

	// derived
	switch typ {
	case "rectangle":
		if wid <= 0 || hei <= 0 {
			return chk.Err("rectangle needs positive width and height. wid=%g hei=%g", wid, hei)
		}
		b, h := wid, hei
		o.A = b * h
		o.I = b * h * h * h / 12.0
		o.Imin = b * b * b * h / 12.0

	case "I-beam":
		if wid <= 0 || hei <= 0 || tf <= 0 || tw <= 0 || 2.0*tf >= hei || tw >= wid {
			return chk.Err("I-beam dimensions are inconsistent. wid=%g hei=%g tf=%g tw=%g", wid, hei, tf, tw)
		}
		b, h := wid, hei
		b3 := b * b * b
		h3 := h * h * h
		tw3 := tw * tw * tw
		l := h - 2.0*tf
		l3 := l * l * l
		o.A = b*h - l*(b-tw)
		o.I = b*h3/12.0 - (b-tw)*l3/12.0
		o.Imin = l*tw3/12.0 + tf*b3/6.0

	case "circle":
		if rad <= 0 {
			return chk.Err("circle needs a positive radius. rad=%g", rad)
		}
		r2 := rad * rad
		o.A = math.Pi * r2
		o.I = math.Pi * r2 * r2 / 4.0
		o.Imin = o.I

	default:
		return chk.Err("cross-section type %q is unavailable", typ)
	}
	return
}

// String returns a one-line summary of the section
func (o *CrossSection) String() string {
	return io.Sf("%s: A=%g %s² I=%g %s⁴", o.Type, o.A, o.Unit, o.I, o.Unit)
}

// Material holds parameters of some reference materials
type Material struct {

	// input
	Type     string // type of material; e.g. "steel"
	UnitPres string // unit of pressure

	// derived
	Desc string  // description
	E    float64 // Young's modulus
	Nu   float64 // Poisson's coefficient
}

// Init initialises material parameters
//  Input:
//   unitPres:  "Pa", "kPa", "MPa" or "GPa"
func (o *Material) Init(typ, unitPres string) (err error) {

	// material data
	switch typ {
	case "steel":
		o.Desc = "Steel: structural"
		o.E = 210000.0 // [MPa]
		o.Nu = 0.30    // [-]
	case "aluminum":
		o.Desc = "Aluminum: 2014-T6"
		o.E = 73100.0 // [MPa]
		o.Nu = 0.35   // [-]
	case "concrete-low":
		o.Desc = "Concrete: low strength"
		o.E = 22100.0 // [MPa]
		o.Nu = 0.15   // [-]
	case "concrete-high":
		o.Desc = "Concrete: high strength"
		o.E = 30000.0 // [MPa]
		o.Nu = 0.15   // [-]
	case "wood-douglas-fir":
		o.Desc = "Wood: Douglas-fir"
		o.E = 13100.0 // [MPa]
		o.Nu = 0.29   // [-]
	default:
		return chk.Err("material type %q is unavailable", typ)
	}

	// set unit
	o.UnitPres = unitPres
	switch unitPres {
	case "Pa":
		o.E *= 1e6
	case "kPa":
		o.E *= 1e3
	case "MPa":
	case "GPa":
		o.E *= 1e-3
	default:
		return chk.Err("unit of pressure %q is invalid", unitPres)
	}
	return
}
