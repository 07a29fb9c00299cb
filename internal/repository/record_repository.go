package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/drill-inventory/internal/model"
)

// RecordRepo encapsulates all database queries related to inventory
// records.  Reads populate the referenced drill.
type RecordRepo struct {
	db *sql.DB
}

// NewRecordRepo constructs a RecordRepo with the provided DB handle.
func NewRecordRepo(db *sql.DB) *RecordRepo {
	return &RecordRepo{db: db}
}

const recordSelect = `SELECT r.id, r.drill_id, r.amount, r.location, r.descr,
	dr.id, dr.part_num, dr.design_id, dr.descr
	FROM records r LEFT JOIN drills dr ON dr.id = r.drill_id`

func scanRecord(s rowScanner) (*model.Record, error) {
	var (
		rec                         model.Record
		loc                         string
		dID, dPart, dDesign, dDescr sql.NullString
	)
	if err := s.Scan(&rec.ID, &rec.DrillID, &rec.Amount, &loc, &rec.Descr, &dID, &dPart, &dDesign, &dDescr); err != nil {
		return nil, err
	}
	rec.Location = model.Location(loc)
	if dID.Valid {
		rec.Drill = &model.Drill{ID: dID.String, PartNum: dPart.String, DesignID: dDesign.String, Descr: dDescr.String}
	}
	return &rec, nil
}

// Create inserts a new record.  An empty location is stored as the default.
func (r *RecordRepo) Create(ctx context.Context, rec *model.Record) error {
	id, err := newID()
	if err != nil {
		return err
	}
	if rec.Location == "" {
		rec.Location = model.DefaultLocation
	}
	const q = "INSERT INTO records (id, drill_id, amount, location, descr) VALUES (?, ?, ?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, q, id, rec.DrillID, rec.Amount, string(rec.Location), rec.Descr); err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	rec.ID = id
	return nil
}

// GetByID fetches a record with its drill populated.  It returns
// ErrRecordNotFound if no row matches.
func (r *RecordRepo) GetByID(ctx context.Context, id string) (*model.Record, error) {
	rec, err := scanRecord(r.db.QueryRowContext(ctx, recordSelect+" WHERE r.id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// List returns all records ordered by the part number of their drill.
func (r *RecordRepo) List(ctx context.Context) ([]*model.Record, error) {
	return r.list(ctx, recordSelect+" ORDER BY dr.part_num, r.id")
}

// ListByDrill returns the records of one drill in insertion order.
func (r *RecordRepo) ListByDrill(ctx context.Context, drillID string) ([]*model.Record, error) {
	return r.list(ctx, recordSelect+" WHERE r.drill_id = ? ORDER BY r.id", drillID)
}

func (r *RecordRepo) list(ctx context.Context, q string, args ...any) ([]*model.Record, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	out := make([]*model.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return out, nil
}

// UpdateByID replaces amount, location and descr of the record identified
// by rec.ID.  The drill reference is not editable and is left untouched.
func (r *RecordRepo) UpdateByID(ctx context.Context, rec *model.Record) error {
	const q = "UPDATE records SET amount = ?, location = ?, descr = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, rec.Amount, string(rec.Location), rec.Descr, rec.ID)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// DeleteByID removes a record.  Records have no dependents.
func (r *RecordRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Count returns the number of records.
func (r *RecordRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// CountByLocation returns the number of records stored at loc.
func (r *RecordRepo) CountByLocation(ctx context.Context, loc model.Location) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records WHERE location = ?", string(loc)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}
