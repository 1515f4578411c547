// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/io"

// EmptyModelError reports a model without nodes or without members
type EmptyModelError struct{}

func (e *EmptyModelError) Error() string {
	return "the model must have at least one member connecting two nodes"
}

// UnconnectedNodeError reports a node that is not attached to any member
type UnconnectedNodeError struct {
	Node int // node handle
}

func (e *UnconnectedNodeError) Error() string {
	return io.Sf("node %d is not connected to any member", e.Node)
}

// PartitionConsistencyError reports that the boundary conditions do not split the DOFs into
// known forces and known displacements
type PartitionConsistencyError struct {
	Nf   int // number of DOFs with known force
	Nu   int // number of DOFs with known displacement
	Ndof int // total number of DOFs
}

func (e *PartitionConsistencyError) Error() string {
	return io.Sf("boundary conditions are inconsistent: %d known forces + %d known displacements != %d DOFs", e.Nf, e.Nu, e.Ndof)
}

// DegenerateMemberError reports a member whose nodes coincide
type DegenerateMemberError struct {
	Member int // member handle
}

func (e *DegenerateMemberError) Error() string {
	return io.Sf("member %d has zero length", e.Member)
}

// UnderconstrainedError reports a singular (or nearly singular) system when the "fail" policy is
// selected; i.e. the structure is a mechanism
type UnderconstrainedError struct {
	Cond float64 // estimated condition number of K_aa
}

func (e *UnderconstrainedError) Error() string {
	return io.Sf("the structure is underconstrained (condition number = %g)", e.Cond)
}

// Status returns the message of a calculation pass: empty on success
func Status(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
