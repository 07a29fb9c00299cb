package model

// PartNumMaxLen is the longest part number a Drill may carry.
const PartNumMaxLen = 24

// Drill is a specific part number belonging to a Design.  DesignID is always
// set; Design is only non-nil when the read populated the reference.
type Drill struct {
	ID       string  // drills.id
	PartNum  string  // drills.part_num
	DesignID string  // drills.design_id
	Descr    string  // drills.descr (empty when unset)
	Design   *Design // populated design, may be nil
}

// URL returns the canonical detail page of the drill.
func (d *Drill) URL() string { return URL(KindDrill, d.ID) }

// DesignName returns the populated design's name or an empty string.
func (d *Drill) DesignName() string {
	if d.Design == nil {
		return ""
	}
	return d.Design.Name
}
