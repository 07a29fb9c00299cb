// Package model declares the catalog entities persisted by the repository
// layer.  Each struct mirrors a table row; references to other entities are
// held both as a raw id and, when a read populates them, as a pointer to the
// referenced entity.
package model

// Entity kinds used in canonical URLs and change events.
const (
	KindDesign = "design"
	KindDrill  = "drill"
	KindRecord = "record"
)

// URL derives the canonical detail URL for an entity of the given kind.
func URL(kind, id string) string {
	return "/catalog/" + kind + "/" + id
}

// ListURL returns the list page for an entity kind.
func ListURL(kind string) string {
	return "/catalog/" + kind + "s"
}

// Design represents a tooling family (for example "RDX").  Name acts as the
// business key: the create flow reuses an existing Design with the same name
// instead of inserting a duplicate.
//
// Fields:
//
//	ID    - opaque identifier assigned by the repository on insert.
//	Name  - short family name, required.
//	Descr - human readable description, required.
type Design struct {
	ID    string // designs.id
	Name  string // designs.name
	Descr string // designs.descr
}

// URL returns the canonical detail page of the design.
func (d *Design) URL() string { return URL(KindDesign, d.ID) }
