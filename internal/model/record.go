package model

// Location is where a counted batch of drills is stored.
type Location string

const (
	LocationTechCenter Location = "Tech Center"
	LocationWarehouse  Location = "Warehouse"
)

// DefaultLocation is applied when a submission leaves the location empty.
const DefaultLocation = LocationTechCenter

// Locations lists every accepted location in display order.
func Locations() []Location {
	return []Location{LocationTechCenter, LocationWarehouse}
}

// Valid reports whether l is one of the accepted locations.
func (l Location) Valid() bool {
	for _, v := range Locations() {
		if l == v {
			return true
		}
	}
	return false
}

func (l Location) String() string { return string(l) }

// Record is an inventory count of a drill at a location.
type Record struct {
	ID       string   // records.id
	DrillID  string   // records.drill_id
	Amount   int      // records.amount, never negative
	Location Location // records.location
	Descr    string   // records.descr (empty when unset)
	Drill    *Drill   // populated drill, may be nil
}

// URL returns the canonical detail page of the record.
func (r *Record) URL() string { return URL(KindRecord, r.ID) }

// PartNum returns the populated drill's part number or an empty string.
func (r *Record) PartNum() string {
	if r.Drill == nil {
		return ""
	}
	return r.Drill.PartNum
}
