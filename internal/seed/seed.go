// Package seed loads the demonstration catalog: six designs, nine drills and
// twelve records.  Fixtures go through the same validation as submitted
// forms, so seeded rows are stored exactly as if typed into the pages.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/iliyamo/drill-inventory/internal/model"
	"github.com/iliyamo/drill-inventory/internal/repository"
	"github.com/iliyamo/drill-inventory/internal/validation"
)

// ErrNotEmpty is returned when the catalog already holds designs and
// existing rows were not asked to be skipped.
var ErrNotEmpty = errors.New("catalog is not empty")

type designStore interface {
	Create(ctx context.Context, d *model.Design) error
	FindByName(ctx context.Context, name string) (*model.Design, error)
	Count(ctx context.Context) (int, error)
}

type drillStore interface {
	Create(ctx context.Context, d *model.Drill) error
	ListPartNums(ctx context.Context) ([]*model.Drill, error)
}

type recordStore interface {
	Create(ctx context.Context, r *model.Record) error
}

// Options controls a seeding run.
type Options struct {
	// SkipExisting reuses designs and drills that already exist (matched by
	// name and part number) and only adds records for newly created drills.
	SkipExisting bool
}

// Result counts the rows a run inserted.
type Result struct {
	Designs int
	Drills  int
	Records int
}

type drillFixture struct {
	partNum string
	design  int
	descr   string
}

type recordFixture struct {
	drill    int
	amount   int
	location model.Location
	descr    string
}

var designFixtures = []validation.DesignForm{
	{Name: "UCY1", Descr: "Drill Standard UCY1"},
	{Name: "MDBT", Descr: "Drill Standard MDBT"},
	{Name: "RDX", Descr: "Drill Standard RDX"},
	{Name: "RDXT", Descr: "Drill RDX T-Point"},
	{Name: "CXDP", Descr: "Router CXDP"},
	{Name: "ET2F", Descr: "Endmill ET2F"},
}

var drillFixtures = []drillFixture{
	{"D0098UCY1098", 0, "0.25 x 2.5MM"},
	{"D0059UCY1197", 0, "0.15 x 5MM"},
	{"D0620MDBT472", 1, "1.5 x 12MM"},
	{"D1250RDX472", 2, "3.175 x 12MM"},
	{"D1250RDXT472", 3, "T-Point 3.175 x 12MM"},
	{"R0630CXDP472", 4, "1.6 x 12MM"},
	{"R0787CXDP472", 4, "2.0 x 12MM"},
	{"E0630ET2F472", 5, "1.6 x 12MM"},
	{"E0787ET2F472", 5, "2.0 x 12MM"},
}

var recordFixtures = []recordFixture{
	{0, 250, model.LocationWarehouse, "App28800, Lot# KN0098233N, received on 2/23/2023"},
	{0, 10000, model.LocationWarehouse, "send to Lemuel for evaluation"},
	{1, 10, model.LocationWarehouse, "check diameter"},
	{2, 0, model.LocationTechCenter, "take top and side view photos"},
	{3, 123, model.LocationWarehouse, "Lot# CN29138213N"},
	{3, 99, model.LocationTechCenter, "Used Drills from App#27900"},
	{3, 65, model.LocationWarehouse, "send to Repoint"},
	{4, 100, model.LocationWarehouse, "send to Lemuel for evaluation"},
	{5, 400, model.LocationTechCenter, "send to Lemuel for evaluation"},
	{6, 80, model.LocationTechCenter, "Repointed"},
	{7, 770, model.LocationWarehouse, "For customer ABC"},
	{7, 60, model.LocationTechCenter, "order more from Taiwan"},
}

// Loader inserts the fixtures through the repositories.
type Loader struct {
	designs designStore
	drills  drillStore
	records recordStore
}

// NewLoader returns a Loader writing through the given stores.
func NewLoader(designs designStore, drills drillStore, records recordStore) *Loader {
	return &Loader{designs: designs, drills: drills, records: records}
}

// Load seeds designs, then drills, then records.
func (l *Loader) Load(ctx context.Context, opts Options) (Result, error) {
	var res Result
	logger := zerolog.Ctx(ctx)

	if !opts.SkipExisting {
		n, err := l.designs.Count(ctx)
		if err != nil {
			return res, err
		}
		if n > 0 {
			return res, fmt.Errorf("%w: %d designs present", ErrNotEmpty, n)
		}
	}

	designIDs := make([]string, len(designFixtures))
	for i, form := range designFixtures {
		in, errs := validation.CheckDesign(&form)
		if errs != nil {
			return res, fmt.Errorf("design fixture %q: %w", form.Name, errs)
		}
		existing, err := l.designs.FindByName(ctx, in.Name)
		switch {
		case err == nil:
			designIDs[i] = existing.ID
			logger.Debug().Str("design", in.Name).Msg("seed: design exists")
			continue
		case !errors.Is(err, repository.ErrNotFound):
			return res, err
		}
		d := in.Design()
		if err := l.designs.Create(ctx, d); err != nil {
			return res, fmt.Errorf("seed design %q: %w", in.Name, err)
		}
		designIDs[i] = d.ID
		res.Designs++
		logger.Info().Str("design", d.Name).Str("id", d.ID).Msg("seed: new design")
	}

	known := map[string]string{}
	if opts.SkipExisting {
		drills, err := l.drills.ListPartNums(ctx)
		if err != nil {
			return res, err
		}
		for _, d := range drills {
			known[d.PartNum] = d.ID
		}
	}

	drillIDs := make([]string, len(drillFixtures))
	created := make([]bool, len(drillFixtures))
	for i, fx := range drillFixtures {
		form := validation.DrillForm{PartNum: fx.partNum, Design: designIDs[fx.design], Descr: fx.descr}
		in, errs := validation.CheckDrill(&form)
		if errs != nil {
			return res, fmt.Errorf("drill fixture %q: %w", fx.partNum, errs)
		}
		if id, ok := known[in.PartNum]; ok {
			drillIDs[i] = id
			continue
		}
		d := in.Drill()
		if err := l.drills.Create(ctx, d); err != nil {
			return res, fmt.Errorf("seed drill %q: %w", in.PartNum, err)
		}
		drillIDs[i], created[i] = d.ID, true
		res.Drills++
		logger.Info().Str("part_num", d.PartNum).Str("id", d.ID).Msg("seed: new drill")
	}

	for _, fx := range recordFixtures {
		if !created[fx.drill] {
			continue
		}
		form := validation.RecordForm{
			Drill:    drillIDs[fx.drill],
			Amount:   strconv.Itoa(fx.amount),
			Location: string(fx.location),
			Descr:    fx.descr,
		}
		in, errs := validation.CheckRecord(&form)
		if errs != nil {
			return res, fmt.Errorf("record fixture for %q: %w", drillFixtures[fx.drill].partNum, errs)
		}
		r := in.Record()
		if err := l.records.Create(ctx, r); err != nil {
			return res, fmt.Errorf("seed record: %w", err)
		}
		res.Records++
	}
	logger.Info().Int("designs", res.Designs).Int("drills", res.Drills).Int("records", res.Records).Msg("seed: done")
	return res, nil
}
