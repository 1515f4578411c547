// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cpmech/gosl/chk"
)

// SolverData holds the settings of a calculation pass
type SolverData struct {
	ZeroTol   float64 `json:"zerotol"   toml:"zerotol"`   // displayed displacements smaller than this are set to zero
	Nstations int     `json:"nstations" toml:"nstations"` // number of stations per member used to compute extreme values
	CondMax   float64 `json:"condmax"   toml:"condmax"`   // condition number of K_aa above which the matrix is treated as singular
	Singular  string  `json:"singular"  toml:"singular"`  // what to do when K_aa is singular: "pinv" => least-squares solution; "fail" => error
	Verbose   bool    `json:"verbose"   toml:"verbose"`   // show messages
}

// SetDefault sets default values
func (o *SolverData) SetDefault() {
	o.ZeroTol = 1e-12
	o.Nstations = 11
	o.CondMax = 1e14
	o.Singular = "pinv"
}

// PostProcess checks and fixes the data just read
func (o *SolverData) PostProcess() (err error) {
	if o.ZeroTol < 0 {
		o.ZeroTol = 0
	}
	if o.Nstations < 2 {
		o.Nstations = 2
	}
	if o.CondMax <= 0 {
		o.CondMax = 1e14
	}
	o.Singular = strings.ToLower(o.Singular)
	switch o.Singular {
	case "":
		o.Singular = "pinv"
	case "pinv", "fail":
	default:
		return chk.Err("singular policy %q is invalid. use \"pinv\" or \"fail\"", o.Singular)
	}
	return
}

// model files ////////////////////////////////////////////////////////////////////////////////////

// SupportData holds the support of a node in a model file
type SupportData struct {
	Kind  string  `json:"kind"  toml:"kind"`  // "pinned", "roller" or "fixed"
	Angle float64 `json:"angle" toml:"angle"` // orientation in degrees
}

// LoadData holds a point force in a model file
type LoadData struct {
	Value float64 `json:"value" toml:"value"` // magnitude
	Angle float64 `json:"angle" toml:"angle"` // direction in degrees; 90 => up
}

// NodeData holds a node in a model file
type NodeData struct {
	Id      int          `json:"id"                toml:"id"`                // label used by members
	X       float64      `json:"x"                 toml:"x"`                 // x-coordinate
	Y       float64      `json:"y"                 toml:"y"`                 // y-coordinate (up)
	Joint   string       `json:"joint,omitempty"   toml:"joint,omitempty"`   // "hinge" (default) or "weld"
	Support *SupportData `json:"support,omitempty" toml:"support,omitempty"` // support, if any
	Loads   []LoadData   `json:"loads,omitempty"   toml:"loads,omitempty"`   // applied point forces
}

// SectionData describes a cross-section in a model file
type SectionData struct {
	Type string  `json:"type"         toml:"type"`         // "rectangle", "I-beam" or "circle"
	Unit string  `json:"unit"         toml:"unit"`         // unit of length
	Wid  float64 `json:"wid,omitempty" toml:"wid,omitempty"` // width
	Hei  float64 `json:"hei,omitempty" toml:"hei,omitempty"` // height
	Tf   float64 `json:"tf,omitempty"  toml:"tf,omitempty"`  // flange thickness
	Tw   float64 `json:"tw,omitempty"  toml:"tw,omitempty"`  // web thickness
	R    float64 `json:"r,omitempty"   toml:"r,omitempty"`   // radius
}

// MaterialData names a reference material in a model file
type MaterialData struct {
	Type string `json:"type" toml:"type"` // e.g. "steel"
	Unit string `json:"unit" toml:"unit"` // unit of pressure
}

// MemberData holds a member in a model file. E, A and I are given directly, computed from Section
// and Material, or taken from the named section Sec; explicit values take precedence
type MemberData struct {
	N0       int           `json:"n0"                 toml:"n0"`                 // label of first node
	N1       int           `json:"n1"                 toml:"n1"`                 // label of second node
	Sec      string        `json:"sec,omitempty"      toml:"sec,omitempty"`      // name of section in the database
	E        float64       `json:"E,omitempty"        toml:"E,omitempty"`        // Young's modulus
	A        float64       `json:"A,omitempty"        toml:"A,omitempty"`        // cross-sectional area
	I        float64       `json:"I,omitempty"        toml:"I,omitempty"`        // second moment of area
	Section  *SectionData  `json:"section,omitempty"  toml:"section,omitempty"`  // cross-section
	Material *MaterialData `json:"material,omitempty" toml:"material,omitempty"` // reference material
}

// ModelData holds the contents of a model file
type ModelData struct {
	Name     string       `json:"name"               toml:"name"`               // name of the structure
	Solver   SolverData   `json:"solver"             toml:"solver"`             // solver settings
	Sections []*Section   `json:"sections,omitempty" toml:"sections,omitempty"` // named sections
	Nodes    []NodeData   `json:"nodes"              toml:"nodes"`              // nodes
	Members  []MemberData `json:"members"            toml:"members"`            // members

	// derived
	SecDb *SecDb `json:"-" toml:"-"` // sections database; sections in the file plus external ones
}

// ReadModel reads a model file (.json, .frm or .toml). The solver block of the file overrides the
// values already in sd; sd may be nil, in which case the defaults are used. Members may refer to
// sections defined in the file or in sdb (optional)
func ReadModel(fn string, sd *SolverData, sdb *SecDb) (mdl *Model, solver *SolverData, err error) {

	// solver data
	solver = new(SolverData)
	if sd == nil {
		solver.SetDefault()
	} else {
		*solver = *sd
	}

	// read file
	b, err := os.ReadFile(os.ExpandEnv(fn))
	if err != nil {
		return nil, nil, chk.Err("cannot read model file %q:\n%v", fn, err)
	}

	// decode
	var dat ModelData
	dat.Solver = *solver
	dat.SecDb = sdb
	switch ext := strings.ToLower(filepath.Ext(fn)); ext {
	case ".json", ".frm":
		err = json.Unmarshal(b, &dat)
	case ".toml":
		_, err = toml.Decode(string(b), &dat)
	default:
		return nil, nil, chk.Err("extension %q of model file is not supported. use .json, .frm or .toml", ext)
	}
	if err != nil {
		return nil, nil, chk.Err("cannot decode model file %q:\n%v", fn, err)
	}
	*solver = dat.Solver
	if err = solver.PostProcess(); err != nil {
		return nil, nil, err
	}

	// model
	if dat.Name == "" {
		dat.Name = strings.TrimSuffix(filepath.Base(fn), filepath.Ext(fn))
	}
	mdl, err = dat.Build()
	return
}

// WriteModel writes a model file; the format is selected by the extension of fn
func WriteModel(fn string, mdl *Model, sd *SolverData) (err error) {
	dat := NewModelData(mdl, sd)
	var buf bytes.Buffer
	switch ext := strings.ToLower(filepath.Ext(fn)); ext {
	case ".json", ".frm":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(dat)
	case ".toml":
		err = toml.NewEncoder(&buf).Encode(dat)
	default:
		return chk.Err("extension %q of model file is not supported. use .json, .frm or .toml", ext)
	}
	if err != nil {
		return chk.Err("cannot encode model %q:\n%v", mdl.Name, err)
	}
	if err = os.WriteFile(os.ExpandEnv(fn), buf.Bytes(), 0644); err != nil {
		return chk.Err("cannot write model file %q:\n%v", fn, err)
	}
	return
}

// NewModelData converts a model into file data. Node labels are the node handles
func NewModelData(mdl *Model, sd *SolverData) (dat *ModelData) {
	snap := mdl.Snapshot()
	dat = &ModelData{Name: snap.Name}
	if sd != nil {
		dat.Solver = *sd
	} else {
		dat.Solver.SetDefault()
	}
	for _, nod := range snap.ActiveNodes() {
		nd := NodeData{Id: nod.Id, X: nod.X, Y: nod.Y, Joint: nod.Joint.String()}
		if nod.Support != nil {
			nd.Support = &SupportData{Kind: nod.Support.Kind.String(), Angle: nod.Support.Angle}
		}
		for _, l := range nod.Loads {
			nd.Loads = append(nd.Loads, LoadData{Value: l.Value, Angle: l.Angle})
		}
		dat.Nodes = append(dat.Nodes, nd)
	}
	for _, mem := range snap.ActiveMembers() {
		dat.Members = append(dat.Members, MemberData{N0: mem.N0, N1: mem.N1, E: mem.E, A: mem.A, I: mem.I})
	}
	return
}

// Build creates a new model from file data
func (o *ModelData) Build() (mdl *Model, err error) {
	mdl = NewModel(o.Name)

	// sections
	db := &SecDb{Sections: o.Sections}
	if err = db.Init(); err != nil {
		return nil, err
	}
	db.Merge(o.SecDb)
	o.SecDb = db

	// nodes
	handles := make(map[int]int)
	for _, nd := range o.Nodes {
		if _, dup := handles[nd.Id]; dup {
			return nil, chk.Err("node label %d is repeated", nd.Id)
		}
		joint, err := ParseJointKind(nd.Joint)
		if err != nil {
			return nil, chk.Err("node %d: %v", nd.Id, err)
		}
		h := mdl.AddNode(nd.X, nd.Y, joint)
		handles[nd.Id] = h
		if nd.Support != nil {
			kind, err := ParseSupportKind(nd.Support.Kind)
			if err != nil {
				return nil, chk.Err("node %d: %v", nd.Id, err)
			}
			mdl.SetSupport(h, &Support{Kind: kind, Angle: nd.Support.Angle})
		}
		for _, l := range nd.Loads {
			mdl.AddLoad(h, l.Value, l.Angle)
		}
	}

	// members
	for i, md := range o.Members {
		n0, ok0 := handles[md.N0]
		n1, ok1 := handles[md.N1]
		if !ok0 || !ok1 {
			return nil, chk.Err("member %d: nodes %d and %d must be defined", i, md.N0, md.N1)
		}
		E, A, I, err := md.Properties(o.SecDb)
		if err != nil {
			return nil, chk.Err("member %d: %v", i, err)
		}
		if _, err = mdl.AddMember(n0, n1, E, A, I); err != nil {
			return nil, chk.Err("member %d: %v", i, err)
		}
	}
	return
}

// Properties returns E, A and I of a member, computing them from section and material if needed
func (o *MemberData) Properties(db *SecDb) (E, A, I float64, err error) {
	E, A, I, err = sectionProps(o.E, o.A, o.I, o.Section, o.Material)
	if err != nil || o.Sec == "" {
		return
	}
	sec := db.Get(o.Sec)
	if sec == nil {
		return 0, 0, 0, chk.Err("section %q is not defined", o.Sec)
	}
	if E == 0 {
		E = sec.E
	}
	if A == 0 {
		A = sec.A
	}
	if I == 0 {
		I = sec.I
	}
	return
}
