// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"strings"

	"github.com/cpmech/gosl/chk"
)

// JointKind defines how members meeting at a node are connected
type JointKind int

const (
	Hinge JointKind = iota // Gerber joint: every member rotates independently
	Weld                   // rigid joint: all members share the rotation
)

// String returns the text key of the joint kind
func (o JointKind) String() string {
	switch o {
	case Hinge:
		return "hinge"
	case Weld:
		return "weld"
	}
	return "unknown"
}

// ParseJointKind converts a text key into a JointKind. The empty key means Hinge
func ParseJointKind(key string) (JointKind, error) {
	switch strings.ToLower(key) {
	case "", "hinge", "gerber":
		return Hinge, nil
	case "weld", "rigid":
		return Weld, nil
	}
	return Hinge, chk.Err("joint kind %q is invalid. use \"hinge\" or \"weld\"", key)
}

// SupportKind defines which displacements a support restrains
//
//   Pinned -- lateral and axial displacements restrained; free to rotate
//   Roller -- lateral displacement restrained; free to slide and rotate
//   Fixed  -- lateral, axial displacements and rotation restrained
//
type SupportKind int

const (
	Pinned SupportKind = iota
	Roller
	Fixed
)

// String returns the text key of the support kind
func (o SupportKind) String() string {
	switch o {
	case Pinned:
		return "pinned"
	case Roller:
		return "roller"
	case Fixed:
		return "fixed"
	}
	return "unknown"
}

// ParseSupportKind converts a text key into a SupportKind
func ParseSupportKind(key string) (SupportKind, error) {
	switch strings.ToLower(key) {
	case "pinned", "locating":
		return Pinned, nil
	case "roller", "floating":
		return Roller, nil
	case "fixed", "clamped":
		return Fixed, nil
	}
	return Pinned, chk.Err("support kind %q is invalid. use \"pinned\", \"roller\" or \"fixed\"", key)
}
