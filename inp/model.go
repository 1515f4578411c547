// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the structural model (nodes, members, supports and loads) and
// reads it from JSON or TOML files
package inp

import (
	"math"
	"sync"

	"github.com/cpmech/gosl/chk"
)

// Support holds the bearing attached to a node
type Support struct {
	Kind  SupportKind // pinned, roller or fixed
	Angle float64     // orientation of the symbol in degrees; not used by the calculation
}

// Load holds a point force applied to a node
type Load struct {
	Value float64 // magnitude [N]
	Angle float64 // direction in degrees; 0 => +x, 90 => +y (up)
}

// Components returns the x and y components of the load
func (o Load) Components() (fx, fy float64) {
	α := o.Angle * math.Pi / 180.0
	return o.Value * math.Cos(α), o.Value * math.Sin(α)
}

// Node holds a joint of the plane frame
type Node struct {
	Id      int       // handle; index in Model.Nodes
	X, Y    float64   // coordinates; y points up
	Joint   JointKind // hinge or weld
	Support *Support  // bearing; nil if the node is free
	Loads   []Load    // applied point forces
	Members []int     // handles of incident members, in insertion order
}

// ResultingForce returns the vector sum of all loads applied to the node
func (o *Node) ResultingForce() (fx, fy float64) {
	for _, l := range o.Loads {
		x, y := l.Components()
		fx += x
		fy += y
	}
	return
}

// Member holds a beam element connecting two nodes
type Member struct {
	Id     int     // handle; index in Model.Members
	N0, N1 int     // handles of first and second nodes
	E      float64 // Young's modulus
	A      float64 // cross-sectional area
	I      float64 // second moment of area
}

// Model holds the structural model. Nodes and members live in separate arenas indexed by their
// handles; removed entries are nil and handles are never reused.
type Model struct {
	Name    string    // name of the structure
	Nodes   []*Node   // [nnodes] Id => node; removed nodes are nil
	Members []*Member // [nmembers] Id => member; removed members are nil

	mu sync.RWMutex
}

// NewModel returns a new empty model
func NewModel(name string) *Model {
	return &Model{Name: name}
}

// AddNode adds a new node and returns its handle
func (o *Model) AddNode(x, y float64, joint JointKind) (id int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	id = len(o.Nodes)
	o.Nodes = append(o.Nodes, &Node{Id: id, X: x, Y: y, Joint: joint})
	return
}

// AddMember connects two existent nodes with a new member and returns its handle
func (o *Model) AddMember(n0, n1 int, E, A, I float64) (id int, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	a, err := o.node(n0)
	if err != nil {
		return -1, err
	}
	b, err := o.node(n1)
	if err != nil {
		return -1, err
	}
	if n0 == n1 {
		return -1, chk.Err("member cannot connect node %d to itself", n0)
	}
	if err = checkSection(E, A, I); err != nil {
		return -1, err
	}
	id = len(o.Members)
	o.Members = append(o.Members, &Member{Id: id, N0: n0, N1: n1, E: E, A: A, I: I})
	a.Members = append(a.Members, id)
	b.Members = append(b.Members, id)
	return
}

// RemoveMember removes a member and detaches it from its nodes. The nodes are kept
func (o *Model) RemoveMember(id int) (err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.removeMember(id)
}

// RemoveNode removes a node after removing all members connected to it
func (o *Model) RemoveNode(id int) (err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	nod, err := o.node(id)
	if err != nil {
		return
	}
	for len(nod.Members) > 0 {
		if err = o.removeMember(nod.Members[0]); err != nil {
			return
		}
	}
	o.Nodes[id] = nil
	return
}

// PruneNodes removes all nodes without members and returns their handles
func (o *Model) PruneNodes() (removed []int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, nod := range o.Nodes {
		if nod != nil && len(nod.Members) == 0 {
			o.Nodes[i] = nil
			removed = append(removed, i)
		}
	}
	return
}

// MoveNode changes the coordinates of a node
func (o *Model) MoveNode(id int, x, y float64) (err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	nod, err := o.node(id)
	if err != nil {
		return
	}
	nod.X, nod.Y = x, y
	return
}

// SetJoint sets the joint kind of a node
func (o *Model) SetJoint(id int, joint JointKind) (err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	nod, err := o.node(id)
	if err != nil {
		return
	}
	nod.Joint = joint
	return
}

// SetSupport attaches a support to a node; use nil to remove it
func (o *Model) SetSupport(id int, sup *Support) (err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	nod, err := o.node(id)
	if err != nil {
		return
	}
	if sup == nil {
		nod.Support = nil
		return
	}
	cpy := *sup
	nod.Support = &cpy
	return
}

// AddLoad applies a point force to a node
func (o *Model) AddLoad(id int, value, angle float64) (err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	nod, err := o.node(id)
	if err != nil {
		return
	}
	nod.Loads = append(nod.Loads, Load{Value: value, Angle: angle})
	return
}

// ClearLoads removes all point forces of a node
func (o *Model) ClearLoads(id int) (err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	nod, err := o.node(id)
	if err != nil {
		return
	}
	nod.Loads = nil
	return
}

// SetSection changes the section properties of a member
func (o *Model) SetSection(id int, E, A, I float64) (err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	mem, err := o.member(id)
	if err != nil {
		return
	}
	if err = checkSection(E, A, I); err != nil {
		return
	}
	mem.E, mem.A, mem.I = E, A, I
	return
}

// Node returns a copy of an active node
func (o *Model) Node(id int) (nod Node, err error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	p, err := o.node(id)
	if err != nil {
		return
	}
	return p.clone(), nil
}

// Member returns a copy of an active member
func (o *Model) Member(id int) (mem Member, err error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	p, err := o.member(id)
	if err != nil {
		return
	}
	return *p, nil
}

// Length returns the length of a member of this model
func (o *Model) Length(m *Member) float64 {
	a, b := o.Nodes[m.N0], o.Nodes[m.N1]
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Angle returns the orientation of a member measured counter-clockwise from +x [rad]
func (o *Model) Angle(m *Member) float64 {
	a, b := o.Nodes[m.N0], o.Nodes[m.N1]
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// Snapshot returns a deep copy of the model taken under the read lock. A calculation pass works
// on the copy so that concurrent edits cannot interfere with it
func (o *Model) Snapshot() *Model {
	o.mu.RLock()
	defer o.mu.RUnlock()
	s := &Model{Name: o.Name}
	s.Nodes = make([]*Node, len(o.Nodes))
	for i, nod := range o.Nodes {
		if nod != nil {
			c := nod.clone()
			s.Nodes[i] = &c
		}
	}
	s.Members = make([]*Member, len(o.Members))
	for i, mem := range o.Members {
		if mem != nil {
			c := *mem
			s.Members[i] = &c
		}
	}
	return s
}

// ActiveNodes returns the nodes that have not been removed, ordered by handle
func (o *Model) ActiveNodes() (nodes []*Node) {
	for _, nod := range o.Nodes {
		if nod != nil {
			nodes = append(nodes, nod)
		}
	}
	return
}

// ActiveMembers returns the members that have not been removed, ordered by handle
func (o *Model) ActiveMembers() (members []*Member) {
	for _, mem := range o.Members {
		if mem != nil {
			members = append(members, mem)
		}
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

func (o *Model) node(id int) (*Node, error) {
	if id < 0 || id >= len(o.Nodes) || o.Nodes[id] == nil {
		return nil, chk.Err("node %d does not exist", id)
	}
	return o.Nodes[id], nil
}

func (o *Model) member(id int) (*Member, error) {
	if id < 0 || id >= len(o.Members) || o.Members[id] == nil {
		return nil, chk.Err("member %d does not exist", id)
	}
	return o.Members[id], nil
}

func (o *Model) removeMember(id int) (err error) {
	mem, err := o.member(id)
	if err != nil {
		return
	}
	for _, n := range []int{mem.N0, mem.N1} {
		if nod := o.Nodes[n]; nod != nil {
			nod.Members = detach(nod.Members, id)
		}
	}
	o.Members[id] = nil
	return
}

func (o *Node) clone() (c Node) {
	c = *o
	if o.Support != nil {
		sup := *o.Support
		c.Support = &sup
	}
	c.Loads = append([]Load(nil), o.Loads...)
	c.Members = append([]int(nil), o.Members...)
	return
}

func detach(ids []int, id int) []int {
	res := ids[:0]
	for _, i := range ids {
		if i != id {
			res = append(res, i)
		}
	}
	return res
}

func checkSection(E, A, I float64) error {
	if E <= 0 || A <= 0 || I <= 0 {
		return chk.Err("E, A and I must be all positive. E=%g A=%g I=%g", E, A, I)
	}
	return nil
}
