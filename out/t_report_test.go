// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_report01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("report01. summary of cantilever")

	res := calculate(tst, cantilever())
	sum := NewSummary(res)

	chk.String(tst, sum.Name, "cantilever")
	chk.Int(tst, "ndof", sum.Ndof, 6)
	chk.Int(tst, "number of nodes", len(sum.Nodes), 2)
	chk.Int(tst, "number of members", len(sum.Members), 1)
	if sum.Singular {
		tst.Errorf("summary should not be singular")
	}
	if sum.Cond <= 0 {
		tst.Errorf("condition number should be positive. got %g", sum.Cond)
	}

	chk.Float64(tst, "sum Fx", 1e-8, sum.SumFx, 0)
	chk.Float64(tst, "sum Fy", 1e-8, sum.SumFy, 1000)
	chk.Float64(tst, "max|M|", 1e-8, sum.MaxAbsM, 2000)
	chk.Float64(tst, "max|U|", 1e-12, sum.MaxAbsU, 0.012698412698412698)

	m := sum.Members[0]
	chk.Int(tst, "n0", m.N0, 0)
	chk.Int(tst, "n1", m.N1, 1)
	chk.Float64(tst, "L", 1e-15, m.L, 2)
	chk.Float64(tst, "angle", 1e-15, m.Angle, 0)
	chk.Float64(tst, "member max|M|", 1e-8, m.MaxAbsM, 2000)
	chk.Float64(tst, "member max|V|", 1e-8, m.MaxAbsV, 1000)

	a, b := sum.Nodes[0], sum.Nodes[1]
	if !a.Supported || b.Supported {
		tst.Errorf("only node 0 should be supported")
	}
	chk.Float64(tst, "Fy @ A", 1e-8, a.Fy, 1000)
	chk.Float64(tst, "Mz @ A", 1e-8, a.Mz, 2000)
	chk.Float64(tst, "uy @ B", 1e-12, b.Uy, -0.012698412698412698)

	// JSON
	buf, err := sum.JSON()
	if err != nil {
		tst.Errorf("JSON failed:\n%v", err)
		return
	}
	var back Summary
	if err = json.Unmarshal(buf, &back); err != nil {
		tst.Errorf("Unmarshal failed:\n%v", err)
		return
	}
	chk.String(tst, back.Name, sum.Name)
	chk.Int(tst, "ndof (json)", back.Ndof, sum.Ndof)
	chk.Float64(tst, "uy @ B (json)", 1e-17, back.Nodes[1].Uy, b.Uy)
}

func Test_report02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("report02. text report")

	res := calculate(tst, portal())
	l := Report(res, true)
	if chk.Verbose {
		io.Pf("%v", l)
	}
	for _, key := range []string{"structure             = portal", "number of DOFs", "member", "known"} {
		if !strings.Contains(l, key) {
			tst.Errorf("report should contain %q", key)
		}
	}
	if strings.Contains(l, "WARNING") {
		tst.Errorf("report should not contain warnings")
	}

	// one line per node and member
	sum := NewSummary(res)
	chk.Int(tst, "node table lines", strings.Count(sum.NodeTable(), "\n"), 5+len(res.Nodes))
	chk.Int(tst, "member table lines", strings.Count(sum.MemberTable(), "\n"), 5+len(res.Beams))

	// without boundary conditions
	l = Report(res, false)
	if strings.Contains(l, "known") {
		tst.Errorf("report without boundary conditions should not list them")
	}
}
