package validation

import (
	"strconv"
	"strings"

	"github.com/iliyamo/drill-inventory/internal/model"
)

// DesignForm is the raw design submission.
type DesignForm struct {
	Name  string `form:"name" validate:"required,max=100"`
	Descr string `form:"descr" validate:"required,max=500"`
}

// DesignInput is a design submission that passed validation.
type DesignInput struct {
	Name  string
	Descr string
}

// CheckDesign sanitizes f in place and validates it.
func CheckDesign(f *DesignForm) (DesignInput, Errors) {
	f.Name, f.Descr = strings.TrimSpace(f.Name), strings.TrimSpace(f.Descr)
	errs := check(f)
	f.Name, f.Descr = Escape(f.Name), Escape(f.Descr)
	if len(errs) > 0 {
		return DesignInput{}, errs
	}
	return DesignInput{Name: f.Name, Descr: f.Descr}, nil
}

// Design builds the entity to persist.
func (in DesignInput) Design() *model.Design {
	return &model.Design{Name: in.Name, Descr: in.Descr}
}

// DesignFormFrom pre-fills an update form from a stored design.
func DesignFormFrom(d *model.Design) DesignForm {
	return DesignForm{Name: d.Name, Descr: d.Descr}
}

// DrillForm is the raw drill submission.  Design carries the referenced
// design id.
type DrillForm struct {
	PartNum string `form:"part_num" validate:"required,max=24"`
	Design  string `form:"design" validate:"required,uuid"`
	Descr   string `form:"descr" validate:"max=500"`
}

// DrillInput is a drill submission that passed validation.  The design
// reference is well formed but its existence is checked by the caller.
type DrillInput struct {
	PartNum  string
	DesignID string
	Descr    string
}

// CheckDrill sanitizes f in place and validates it.
func CheckDrill(f *DrillForm) (DrillInput, Errors) {
	f.PartNum = strings.TrimSpace(f.PartNum)
	f.Design = strings.TrimSpace(f.Design)
	f.Descr = strings.TrimSpace(f.Descr)
	errs := check(f)
	f.PartNum, f.Design, f.Descr = Escape(f.PartNum), Escape(f.Design), Escape(f.Descr)
	if len(errs) > 0 {
		return DrillInput{}, errs
	}
	return DrillInput{PartNum: f.PartNum, DesignID: f.Design, Descr: f.Descr}, nil
}

// Drill builds the entity to persist.
func (in DrillInput) Drill() *model.Drill {
	return &model.Drill{PartNum: in.PartNum, DesignID: in.DesignID, Descr: in.Descr}
}

// DrillFormFrom pre-fills an update form from a stored drill.
func DrillFormFrom(d *model.Drill) DrillForm {
	return DrillForm{PartNum: d.PartNum, Design: d.DesignID, Descr: d.Descr}
}

// RecordForm is the raw record submission.
type RecordForm struct {
	Drill    string `form:"drill" validate:"required,uuid"`
	Amount   string `form:"amount" validate:"required,nonnegint"`
	Location string `form:"location" validate:"required,oneof='Tech Center' Warehouse"`
	Descr    string `form:"descr" validate:"max=500"`
}

// RecordUpdateForm is the record submission of the update flow, where the
// drill reference cannot be changed.
type RecordUpdateForm struct {
	Amount   string `form:"amount" validate:"required,nonnegint"`
	Location string `form:"location" validate:"required,oneof='Tech Center' Warehouse"`
	Descr    string `form:"descr" validate:"max=500"`
}

// RecordInput is a record submission that passed validation.  DrillID is
// empty for updates.
type RecordInput struct {
	DrillID  string
	Amount   int
	Location model.Location
	Descr    string
}

func trimLocation(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return string(model.DefaultLocation)
	}
	return s
}

// CheckRecord sanitizes f in place and validates it.
func CheckRecord(f *RecordForm) (RecordInput, Errors) {
	f.Drill = strings.TrimSpace(f.Drill)
	f.Amount = strings.TrimSpace(f.Amount)
	f.Location = trimLocation(f.Location)
	f.Descr = strings.TrimSpace(f.Descr)
	errs := check(f)
	f.Drill, f.Amount, f.Location, f.Descr = Escape(f.Drill), Escape(f.Amount), Escape(f.Location), Escape(f.Descr)
	if len(errs) > 0 {
		return RecordInput{}, errs
	}
	amount, _ := strconv.Atoi(f.Amount)
	return RecordInput{DrillID: f.Drill, Amount: amount, Location: model.Location(f.Location), Descr: f.Descr}, nil
}

// CheckRecordUpdate sanitizes f in place and validates it.
func CheckRecordUpdate(f *RecordUpdateForm) (RecordInput, Errors) {
	f.Amount = strings.TrimSpace(f.Amount)
	f.Location = trimLocation(f.Location)
	f.Descr = strings.TrimSpace(f.Descr)
	errs := check(f)
	f.Amount, f.Location, f.Descr = Escape(f.Amount), Escape(f.Location), Escape(f.Descr)
	if len(errs) > 0 {
		return RecordInput{}, errs
	}
	amount, _ := strconv.Atoi(f.Amount)
	return RecordInput{Amount: amount, Location: model.Location(f.Location), Descr: f.Descr}, nil
}

// Record builds the entity to persist.
func (in RecordInput) Record() *model.Record {
	return &model.Record{DrillID: in.DrillID, Amount: in.Amount, Location: in.Location, Descr: in.Descr}
}

// RecordUpdateFormFrom pre-fills an update form from a stored record.
func RecordUpdateFormFrom(r *model.Record) RecordUpdateForm {
	return RecordUpdateForm{Amount: strconv.Itoa(r.Amount), Location: string(r.Location), Descr: r.Descr}
}
