package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	d := &Design{ID: "abc"}
	dr := &Drill{ID: "def"}
	r := &Record{ID: "ghi"}

	assert.Equal(t, "/catalog/design/abc", d.URL())
	assert.Equal(t, "/catalog/drill/def", dr.URL())
	assert.Equal(t, "/catalog/record/ghi", r.URL())
	assert.Equal(t, "/catalog/drills", ListURL(KindDrill))
}

func TestLocationValid(t *testing.T) {
	assert.True(t, LocationTechCenter.Valid())
	assert.True(t, LocationWarehouse.Valid())
	assert.False(t, Location("Basement").Valid())
	assert.False(t, Location("").Valid())
	assert.False(t, Location("warehouse").Valid())
}

func TestPopulatedAccessors(t *testing.T) {
	dr := &Drill{ID: "1"}
	assert.Empty(t, dr.DesignName())
	dr.Design = &Design{Name: "RDX"}
	assert.Equal(t, "RDX", dr.DesignName())

	r := &Record{}
	assert.Empty(t, r.PartNum())
	r.Drill = dr
	dr.PartNum = "D1250RDX472"
	assert.Equal(t, "D1250RDX472", r.PartNum())
}
