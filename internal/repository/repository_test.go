package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/drill-inventory/internal/model"
	"github.com/iliyamo/drill-inventory/internal/testutil"
	"github.com/iliyamo/drill-inventory/internal/validation"
)

type repos struct {
	designs *DesignRepo
	drills  *DrillRepo
	records *RecordRepo
}

func setup(t *testing.T) repos {
	db := testutil.SetupTestDB(t)
	return repos{NewDesignRepo(db), NewDrillRepo(db), NewRecordRepo(db)}
}

func TestNotFoundSentinels(t *testing.T) {
	for _, err := range []error{ErrDesignNotFound, ErrDrillNotFound, ErrRecordNotFound} {
		assert.True(t, errors.Is(err, ErrNotFound), err.Error())
	}
	assert.False(t, errors.Is(ErrConflict, ErrNotFound))
}

func TestDesignCRUD(t *testing.T) {
	r := setup(t)
	ctx := context.Background()

	d := &model.Design{Name: "RDX", Descr: "Drill Standard RDX"}
	require.NoError(t, r.designs.Create(ctx, d))
	require.NotEmpty(t, d.ID)

	got, err := r.designs.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, *d, *got)

	found, err := r.designs.FindByName(ctx, "RDX")
	require.NoError(t, err)
	assert.Equal(t, d.ID, found.ID)

	_, err = r.designs.FindByName(ctx, "rdx")
	assert.ErrorIs(t, err, ErrDesignNotFound)

	upd := &model.Design{ID: d.ID, Name: "RDX2", Descr: "renamed"}
	require.NoError(t, r.designs.UpdateByID(ctx, upd))
	got, err = r.designs.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, "RDX2", got.Name)

	// unchanged values still count as a match
	require.NoError(t, r.designs.UpdateByID(ctx, upd))

	err = r.designs.UpdateByID(ctx, &model.Design{ID: "missing", Name: "x", Descr: "y"})
	assert.ErrorIs(t, err, ErrDesignNotFound)

	n, err := r.designs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, r.designs.DeleteByID(ctx, d.ID))
	_, err = r.designs.GetByID(ctx, d.ID)
	assert.ErrorIs(t, err, ErrDesignNotFound)
	assert.ErrorIs(t, r.designs.DeleteByID(ctx, d.ID), ErrDesignNotFound)
}

func TestDesignListSortedByName(t *testing.T) {
	r := setup(t)
	ctx := context.Background()
	for _, n := range []string{"UCY1", "CXDP", "RDX"} {
		require.NoError(t, r.designs.Create(ctx, &model.Design{Name: n, Descr: n + " descr"}))
	}

	list, err := r.designs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"CXDP", "RDX", "UCY1"}, []string{list[0].Name, list[1].Name, list[2].Name})
	assert.Equal(t, "CXDP descr", list[0].Descr)

	names, err := r.designs.ListNames(ctx)
	require.NoError(t, err)
	require.Len(t, names, 3)
	assert.Equal(t, "CXDP", names[0].Name)
	assert.Empty(t, names[0].Descr)
}

func TestEmptyListsAreNotNil(t *testing.T) {
	r := setup(t)
	ctx := context.Background()

	designs, err := r.designs.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, designs)
	assert.Empty(t, designs)

	drills, err := r.drills.ListByDesign(ctx, "nope")
	require.NoError(t, err)
	assert.NotNil(t, drills)
	assert.Empty(t, drills)

	records, err := r.records.ListByDrill(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDrillPopulatesDesign(t *testing.T) {
	r := setup(t)
	ctx := context.Background()

	g := &model.Design{Name: "RDX", Descr: "Drill Standard RDX"}
	require.NoError(t, r.designs.Create(ctx, g))
	dr := &model.Drill{PartNum: "D1250RDX472", DesignID: g.ID, Descr: "3.175 x 12MM"}
	require.NoError(t, r.drills.Create(ctx, dr))

	got, err := r.drills.GetByID(ctx, dr.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Design)
	assert.Equal(t, "RDX", got.Design.Name)
	assert.Equal(t, "3.175 x 12MM", got.Descr)

	byDesign, err := r.drills.ListByDesign(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, byDesign, 1)
	assert.Equal(t, dr.ID, byDesign[0].ID)

	_, err = r.drills.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrDrillNotFound)
}

func TestDrillListSortedByPartNum(t *testing.T) {
	r := setup(t)
	ctx := context.Background()
	g := &model.Design{Name: "UCY1", Descr: "Drill Standard UCY1"}
	require.NoError(t, r.designs.Create(ctx, g))
	for _, pn := range []string{"D0098UCY1098", "D0059UCY1197"} {
		require.NoError(t, r.drills.Create(ctx, &model.Drill{PartNum: pn, DesignID: g.ID}))
	}

	list, err := r.drills.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "D0059UCY1197", list[0].PartNum)
	assert.Equal(t, "UCY1", list[0].DesignName())

	parts, err := r.drills.ListPartNums(ctx)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, "D0059UCY1197", parts[0].PartNum)
	assert.Nil(t, parts[0].Design)
}

func TestDeleteGuards(t *testing.T) {
	r := setup(t)
	ctx := context.Background()

	g := &model.Design{Name: "RDX", Descr: "Drill Standard RDX"}
	require.NoError(t, r.designs.Create(ctx, g))
	dr := &model.Drill{PartNum: "D1250RDX472", DesignID: g.ID}
	require.NoError(t, r.drills.Create(ctx, dr))
	rec := &model.Record{DrillID: dr.ID, Amount: 123, Location: model.LocationWarehouse}
	require.NoError(t, r.records.Create(ctx, rec))

	assert.ErrorIs(t, r.designs.DeleteByID(ctx, g.ID), ErrConflict)
	assert.ErrorIs(t, r.drills.DeleteByID(ctx, dr.ID), ErrConflict)

	_, err := r.designs.GetByID(ctx, g.ID)
	require.NoError(t, err, "guarded design must survive")
	_, err = r.drills.GetByID(ctx, dr.ID)
	require.NoError(t, err, "guarded drill must survive")

	require.NoError(t, r.records.DeleteByID(ctx, rec.ID))
	assert.ErrorIs(t, r.records.DeleteByID(ctx, rec.ID), ErrRecordNotFound)
	require.NoError(t, r.drills.DeleteByID(ctx, dr.ID))
	assert.ErrorIs(t, r.drills.DeleteByID(ctx, dr.ID), ErrDrillNotFound)
	require.NoError(t, r.designs.DeleteByID(ctx, g.ID))
}

func TestRecordCRUDAndCounts(t *testing.T) {
	r := setup(t)
	ctx := context.Background()

	g := &model.Design{Name: "RDX", Descr: "Drill Standard RDX"}
	require.NoError(t, r.designs.Create(ctx, g))
	a := &model.Drill{PartNum: "B-PART", DesignID: g.ID}
	b := &model.Drill{PartNum: "A-PART", DesignID: g.ID}
	require.NoError(t, r.drills.Create(ctx, a))
	require.NoError(t, r.drills.Create(ctx, b))

	r1 := &model.Record{DrillID: a.ID, Amount: 250, Location: model.LocationWarehouse, Descr: "lot 1"}
	r2 := &model.Record{DrillID: b.ID, Amount: 0}
	require.NoError(t, r.records.Create(ctx, r1))
	require.NoError(t, r.records.Create(ctx, r2))
	assert.Equal(t, model.LocationTechCenter, r2.Location, "empty location defaults")

	got, err := r.records.GetByID(ctx, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, 250, got.Amount)
	assert.Equal(t, "B-PART", got.PartNum())

	list, err := r.records.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A-PART", list[0].PartNum(), "records sort by drill part number")

	byDrill, err := r.records.ListByDrill(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, byDrill, 1)

	upd := &model.Record{ID: r1.ID, DrillID: "ignored", Amount: 10, Location: model.LocationTechCenter, Descr: "moved"}
	require.NoError(t, r.records.UpdateByID(ctx, upd))
	got, err = r.records.GetByID(ctx, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, r1.ID, got.ID)
	assert.Equal(t, a.ID, got.DrillID, "drill reference is not editable")
	assert.Equal(t, 10, got.Amount)

	assert.ErrorIs(t, r.records.UpdateByID(ctx, &model.Record{ID: "missing", Location: model.LocationWarehouse}), ErrRecordNotFound)

	total, err := r.records.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	tc, err := r.records.CountByLocation(ctx, model.LocationTechCenter)
	require.NoError(t, err)
	assert.Equal(t, 2, tc)
	wh, err := r.records.CountByLocation(ctx, model.LocationWarehouse)
	require.NoError(t, err)
	assert.Zero(t, wh)
}

func TestDesignStoresLongestEscapedName(t *testing.T) {
	r := setup(t)
	ctx := context.Background()

	in, errs := validation.CheckDesign(&validation.DesignForm{Name: strings.Repeat("/", 100), Descr: "slashes"})
	require.Empty(t, errs)
	require.Len(t, in.Name, 600)

	d := in.Design()
	require.NoError(t, r.designs.Create(ctx, d))

	got, err := r.designs.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Name, got.Name)

	found, err := r.designs.FindByName(ctx, in.Name)
	require.NoError(t, err)
	assert.Equal(t, d.ID, found.ID)

	d.Name = validation.Escape(strings.Repeat("<", 100))
	require.NoError(t, r.designs.UpdateByID(ctx, d))
	got, err = r.designs.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.Name, got.Name)
}
