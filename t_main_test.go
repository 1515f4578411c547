// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/wolfgang-alpha/TrussCalculator/out"
)

func verbose() {
	chk.Verbose = true
}

// isolate runs the test from a directory without config files
func isolate(tst *testing.T) (dir string) {
	dir = tst.TempDir()
	tst.Setenv("HOME", dir)
	wd, err := os.Getwd()
	if err != nil {
		tst.Fatal(err)
	}
	if err = os.Chdir(dir); err != nil {
		tst.Fatal(err)
	}
	tst.Cleanup(func() { os.Chdir(wd) })
	return
}

// execute runs framecalc with args and returns its standard output
func execute(tst *testing.T, args ...string) (string, error) {
	stdout, _, err := executeAll(tst, args...)
	return stdout, err
}

// executeAll runs framecalc with args and returns the command output and the log
func executeAll(tst *testing.T, args ...string) (stdout, stderr string, err error) {
	var bout, berr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&bout)
	root.SetErr(&berr)
	root.SetArgs(args)
	err = root.Execute()
	if chk.Verbose {
		io.Pf("%s%s", berr.String(), bout.String())
	}
	return bout.String(), berr.String(), err
}

// captureStdout returns what f writes directly to os.Stdout
func captureStdout(tst *testing.T, f func()) string {
	r, w, err := os.Pipe()
	if err != nil {
		tst.Fatalf("Pipe failed:\n%v", err)
	}
	saved := os.Stdout
	os.Stdout = w
	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		buf.ReadFrom(r)
		done <- buf.String()
	}()
	f()
	os.Stdout = saved
	w.Close()
	return <-done
}

func Test_config01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config01. defaults and environment")

	isolate(tst)
	cfg, err := loadConfig("")
	if err != nil {
		tst.Errorf("loadConfig failed:\n%v", err)
		return
	}
	chk.String(tst, cfg.File, "")
	chk.Float64(tst, "zerotol", 1e-17, cfg.Solver.ZeroTol, 1e-12)
	chk.Int(tst, "nstations", cfg.Solver.Nstations, 11)
	chk.String(tst, cfg.Solver.Singular, "pinv")
	chk.String(tst, cfg.Db, "")

	tst.Setenv("FRAMECALC_NSTATIONS", "7")
	tst.Setenv("FRAMECALC_SINGULAR", "FAIL")
	cfg, err = loadConfig("")
	if err != nil {
		tst.Errorf("loadConfig failed:\n%v", err)
		return
	}
	chk.Int(tst, "nstations (env)", cfg.Solver.Nstations, 7)
	chk.String(tst, cfg.Solver.Singular, "fail")

	tst.Setenv("FRAMECALC_SINGULAR", "ignore")
	if _, err = loadConfig(""); err == nil {
		tst.Errorf("loadConfig should fail with an invalid singular policy")
	}
}

func Test_config02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config02. config file")

	dir := isolate(tst)
	err := os.WriteFile(filepath.Join(dir, "framecalc.toml"), []byte("nstations = 21\ncondmax = 1e10\ndb = \"runs.db\"\n"), 0644)
	if err != nil {
		tst.Errorf("WriteFile failed:\n%v", err)
		return
	}
	cfg, err := loadConfig("")
	if err != nil {
		tst.Errorf("loadConfig failed:\n%v", err)
		return
	}
	chk.Int(tst, "nstations", cfg.Solver.Nstations, 21)
	chk.Float64(tst, "condmax", 1e-17, cfg.Solver.CondMax, 1e10)
	chk.String(tst, cfg.Db, "runs.db")
	if !strings.HasSuffix(cfg.File, "framecalc.toml") {
		tst.Errorf("config file should be framecalc.toml. got %q", cfg.File)
	}

	// environment overrides the file
	tst.Setenv("FRAMECALC_NSTATIONS", "5")
	cfg, err = loadConfig("")
	if err != nil {
		tst.Errorf("loadConfig failed:\n%v", err)
		return
	}
	chk.Int(tst, "nstations (env)", cfg.Solver.Nstations, 5)

	// explicit file
	fn := filepath.Join(dir, "other.yaml")
	os.WriteFile(fn, []byte("sections: lib.sec\n"), 0644)
	cfg, err = loadConfig(fn)
	if err != nil {
		tst.Errorf("loadConfig failed:\n%v", err)
		return
	}
	chk.String(tst, cfg.Sections, "lib.sec")
	chk.String(tst, cfg.Db, "")
	if _, err = loadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		tst.Errorf("loadConfig should fail when an explicit config file is missing")
	}
}

func Test_cli01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cli01. solve and sample")

	wd, _ := os.Getwd()
	model := filepath.Join(wd, "inp", "data", "cantilever.json")
	isolate(tst)

	// solve
	stdout, err := execute(tst, "solve", model, "--json")
	if err != nil {
		tst.Errorf("solve failed:\n%v", err)
		return
	}
	var sum out.Summary
	if err = json.Unmarshal([]byte(stdout), &sum); err != nil {
		tst.Errorf("solve should print JSON:\n%v", err)
		return
	}
	chk.String(tst, sum.Name, "cantilever")
	chk.Int(tst, "ndof", sum.Ndof, 6)
	chk.Float64(tst, "uy @ tip", 1e-12, sum.Nodes[1].Uy, -0.012698412698412698)

	// text report
	stdout, err = execute(tst, "solve", model, "--bcs")
	if err != nil {
		tst.Errorf("solve failed:\n%v", err)
		return
	}
	if !strings.Contains(stdout, "structure             = cantilever") || !strings.Contains(stdout, "known") {
		tst.Errorf("report is incomplete:\n%s", stdout)
	}

	// sample
	stdout, err = execute(tst, "sample", model, "0", "-n", "3", "--json")
	if err != nil {
		tst.Errorf("sample failed:\n%v", err)
		return
	}
	var d out.Diagram
	if err = json.Unmarshal([]byte(stdout), &d); err != nil {
		tst.Errorf("sample should print JSON:\n%v", err)
		return
	}
	chk.Array(tst, "moment", 1e-8, d.Moment, []float64{-2000, -1000, 0})

	// errors
	if _, err = execute(tst, "sample", model, "7"); err == nil {
		tst.Errorf("sample should fail for a member that does not exist")
	}
	if _, err = execute(tst, "sample", model, "beam"); err == nil {
		tst.Errorf("sample should fail for an invalid member")
	}
	if _, err = execute(tst, "solve", "missing.json"); err == nil {
		tst.Errorf("solve should fail for a missing model file")
	}
}

func Test_cli02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cli02. check, convert and archive")

	wd, _ := os.Getwd()
	model := filepath.Join(wd, "inp", "data", "cantilever.json")
	dir := isolate(tst)

	// check
	stdout, err := execute(tst, "check", model)
	if err != nil {
		tst.Errorf("check failed:\n%v", err)
		return
	}
	for _, key := range []string{"number of DOFs = 6", "known forces   = 3", "known displ.   = 3"} {
		if !strings.Contains(stdout, key) {
			tst.Errorf("check should print %q:\n%s", key, stdout)
		}
	}

	// convert and solve converted model
	converted := filepath.Join(dir, "cantilever.toml")
	if _, err = execute(tst, "convert", model, converted); err != nil {
		tst.Errorf("convert failed:\n%v", err)
		return
	}
	stdout, err = execute(tst, "solve", converted, "--json")
	if err != nil {
		tst.Errorf("solve failed:\n%v", err)
		return
	}
	var sum out.Summary
	if err = json.Unmarshal([]byte(stdout), &sum); err != nil {
		tst.Errorf("solve should print JSON:\n%v", err)
		return
	}
	chk.Float64(tst, "uy @ tip (converted)", 1e-12, sum.Nodes[1].Uy, -0.012698412698412698)

	// archive
	db := filepath.Join(dir, "runs.db")
	if _, err = execute(tst, "runs"); err == nil {
		tst.Errorf("runs should fail without archive")
	}
	for i := 0; i < 2; i++ {
		if _, err = execute(tst, "solve", model, "--db", db); err != nil {
			tst.Errorf("solve failed:\n%v", err)
			return
		}
	}
	stdout, err = execute(tst, "runs", "--db", db)
	if err != nil {
		tst.Errorf("runs failed:\n%v", err)
		return
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	chk.Int(tst, "number of lines", len(lines), 3)
	id := strings.Fields(lines[1])[0]

	stdout, err = execute(tst, "runs", "show", id, "--db", db)
	if err != nil {
		tst.Errorf("runs show failed:\n%v", err)
		return
	}
	if !strings.Contains(stdout, "cantilever") {
		tst.Errorf("runs show should print the structure name:\n%s", stdout)
	}
	if _, err = execute(tst, "runs", "rm", id, "--db", db); err != nil {
		tst.Errorf("runs rm failed:\n%v", err)
		return
	}
	stdout, _ = execute(tst, "runs", "--db", db)
	chk.Int(tst, "number of lines after rm", len(strings.Split(strings.TrimSpace(stdout), "\n")), 2)
}

func Test_cli03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cli03. verbose solve keeps progress out of the report")

	wd, _ := os.Getwd()
	model := filepath.Join(wd, "inp", "data", "cantilever.json")
	isolate(tst)

	var stdout, stderr string
	var err error
	direct := captureStdout(tst, func() {
		stdout, stderr, err = executeAll(tst, "-v", "solve", model)
	})
	if err != nil {
		tst.Errorf("solve failed:\n%v", err)
		return
	}
	if strings.Contains(direct, "> ") {
		tst.Errorf("solver messages should not be written to stdout:\n%s", direct)
	}
	if strings.Contains(stdout, "> ") {
		tst.Errorf("report should not contain solver messages:\n%s", stdout)
	}
	if !strings.Contains(stdout, "structure             = cantilever") {
		tst.Errorf("report is incomplete:\n%s", stdout)
	}
	for _, key := range []string{"running calculation", "calculation finished", "solved"} {
		if !strings.Contains(stderr, key) {
			tst.Errorf("log should contain %q:\n%s", key, stderr)
		}
	}
}
