// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cpmech/gosl/chk"
	"github.com/wolfgang-alpha/TrussCalculator/ana"
)

// Section holds a named member section. The properties are either given directly (E, A, I) or
// computed from a cross-section and a reference material
type Section struct {

	// input
	Name     string        `json:"name"               toml:"name"`               // name of section; e.g. "column"
	E        float64       `json:"E,omitempty"        toml:"E,omitempty"`        // Young's modulus
	A        float64       `json:"A,omitempty"        toml:"A,omitempty"`        // cross-sectional area
	I        float64       `json:"I,omitempty"        toml:"I,omitempty"`        // second moment of area
	Shape    *SectionData  `json:"section,omitempty"  toml:"section,omitempty"`  // cross-section
	Material *MaterialData `json:"material,omitempty" toml:"material,omitempty"` // reference material
}

// SecDb implements a database of member sections
type SecDb struct {

	// input
	Sections []*Section `json:"sections" toml:"sections"` // all sections

	// derived
	byname map[string]*Section
}

// ReadSecDb reads a database of sections from a JSON (.json, .sec) or TOML (.toml) file
func ReadSecDb(fn string) (sdb *SecDb, err error) {

	// read file
	b, err := os.ReadFile(os.ExpandEnv(fn))
	if err != nil {
		return nil, chk.Err("cannot read sections file %q:\n%v", fn, err)
	}

	// decode
	sdb = new(SecDb)
	switch ext := strings.ToLower(filepath.Ext(fn)); ext {
	case ".json", ".sec":
		err = json.Unmarshal(b, sdb)
	case ".toml":
		_, err = toml.Decode(string(b), sdb)
	default:
		return nil, chk.Err("extension %q of sections file is not supported. use .json, .sec or .toml", ext)
	}
	if err != nil {
		return nil, chk.Err("cannot decode sections file %q:\n%v", fn, err)
	}
	err = sdb.Init()
	return
}

// Init computes the properties of all sections and builds the index by name
func (o *SecDb) Init() (err error) {
	o.byname = make(map[string]*Section)
	for _, s := range o.Sections {
		if s.Name == "" {
			return chk.Err("all sections must have a name")
		}
		if _, dup := o.byname[s.Name]; dup {
			return chk.Err("section %q is repeated", s.Name)
		}
		s.E, s.A, s.I, err = sectionProps(s.E, s.A, s.I, s.Shape, s.Material)
		if err != nil {
			return chk.Err("section %q: %v", s.Name, err)
		}
		o.byname[s.Name] = s
	}
	return
}

// Get returns a section
//  Note: returns nil if not found
func (o *SecDb) Get(name string) *Section {
	if o == nil || o.byname == nil {
		return nil
	}
	return o.byname[name]
}

// Merge adds the sections of another database. Sections already present are kept
func (o *SecDb) Merge(other *SecDb) {
	if other == nil {
		return
	}
	if o.byname == nil {
		o.byname = make(map[string]*Section)
	}
	for _, s := range other.Sections {
		if _, ok := o.byname[s.Name]; !ok {
			o.Sections = append(o.Sections, s)
			o.byname[s.Name] = s
		}
	}
}

// sectionProps returns E, A and I, computing the missing ones from shape and material
func sectionProps(E, A, I float64, shape *SectionData, material *MaterialData) (float64, float64, float64, error) {
	if shape != nil && (A == 0 || I == 0) {
		var sec ana.CrossSection
		if err := sec.Init(shape.Type, shape.Unit, shape.Wid, shape.Hei, shape.Tf, shape.Tw, shape.R); err != nil {
			return 0, 0, 0, err
		}
		if A == 0 {
			A = sec.A
		}
		if I == 0 {
			I = sec.I
		}
	}
	if material != nil && E == 0 {
		var mat ana.Material
		unit := material.Unit
		if unit == "" {
			unit = "Pa"
		}
		if err := mat.Init(material.Type, unit); err != nil {
			return 0, 0, 0, err
		}
		E = mat.E
	}
	return E, A, I, nil
}
