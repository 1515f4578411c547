// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/wolfgang-alpha/TrussCalculator/fem"
	"github.com/wolfgang-alpha/TrussCalculator/inp"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Run holds one archived calculation pass
type Run struct {
	ID        uuid.UUID      `json:"id"        gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time      `json:"createdAt" gorm:"index"`
	Name      string         `json:"name"      gorm:"size:128;index"`
	Ndof      int            `json:"ndof"`
	Singular  bool           `json:"singular"`
	MaxAbsN   float64        `json:"maxAbsN"`
	MaxAbsU   float64        `json:"maxAbsU"`
	Model     datatypes.JSON `json:"model"`   // model and solver data as in model files
	Summary   datatypes.JSON `json:"summary"` // results
}

// Decode rebuilds the model and solver data of an archived run
func (o *Run) Decode() (mdl *inp.Model, sd *inp.SolverData, err error) {
	var dat inp.ModelData
	if err = json.Unmarshal(o.Model, &dat); err != nil {
		return nil, nil, chk.Err("cannot decode model of run %v:\n%v", o.ID, err)
	}
	sd = new(inp.SolverData)
	*sd = dat.Solver
	mdl, err = dat.Build()
	return
}

// Results decodes the summary of an archived run
func (o *Run) Results() (sum *Summary, err error) {
	sum = new(Summary)
	if err = json.Unmarshal(o.Summary, sum); err != nil {
		return nil, chk.Err("cannot decode results of run %v:\n%v", o.ID, err)
	}
	return
}

// Store archives calculation passes in a SQLite database
type Store struct {
	db *gorm.DB
}

// OpenStore opens (or creates) the archive @ path. An empty path means an in-memory database
func OpenStore(path string) (o *Store, err error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, chk.Err("cannot open archive %q:\n%v", path, err)
	}

	// a single connection keeps in-memory databases alive and serialises writers
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err = db.AutoMigrate(&Run{}); err != nil {
		sqlDB.Close()
		return nil, chk.Err("cannot migrate archive %q:\n%v", path, err)
	}
	return &Store{db: db}, nil
}

// Save archives the results of a calculation pass
func (o *Store) Save(ctx context.Context, res *fem.Results) (run *Run, err error) {
	dat := inp.NewModelData(res.Model, res.Solver)
	bmdl, err := json.Marshal(dat)
	if err != nil {
		return nil, chk.Err("cannot encode model %q:\n%v", res.Model.Name, err)
	}
	sum := NewSummary(res)
	bsum, err := sum.JSON()
	if err != nil {
		return nil, chk.Err("cannot encode results of %q:\n%v", res.Model.Name, err)
	}
	run = &Run{
		ID:       uuid.New(),
		Name:     res.Model.Name,
		Ndof:     res.Ndof,
		Singular: res.Singular,
		MaxAbsN:  res.MaxAbsN,
		MaxAbsU:  res.MaxAbsU,
		Model:    datatypes.JSON(bmdl),
		Summary:  datatypes.JSON(bsum),
	}
	if err = o.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, chk.Err("cannot save run of %q:\n%v", res.Model.Name, err)
	}
	return
}

// Get returns an archived run. id may be given in any form accepted by uuid.Parse
func (o *Store) Get(ctx context.Context, id string) (run *Run, err error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, chk.Err("run id %q is invalid:\n%v", id, err)
	}
	run = new(Run)
	err = o.db.WithContext(ctx).Where("id = ?", uid.String()).First(run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, chk.Err("cannot find run %v", uid)
	}
	if err != nil {
		return nil, chk.Err("cannot read run %v:\n%v", uid, err)
	}
	return
}

// List returns archived runs, newest first. name filters by structure name ("" means all);
// limit < 0 means no limit
func (o *Store) List(ctx context.Context, name string, limit int) (runs []*Run, err error) {
	q := o.db.WithContext(ctx).Order("created_at desc, rowid desc").Limit(limit)
	if name != "" {
		q = q.Where("name = ?", name)
	}
	if err = q.Find(&runs).Error; err != nil {
		return nil, chk.Err("cannot list runs:\n%v", err)
	}
	return
}

// Delete removes an archived run
func (o *Store) Delete(ctx context.Context, id string) (err error) {
	run, err := o.Get(ctx, id)
	if err != nil {
		return
	}
	return o.db.WithContext(ctx).Delete(run).Error
}

// Close closes the database
func (o *Store) Close() error {
	sqlDB, err := o.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
