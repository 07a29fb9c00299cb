package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/drill-inventory/internal/model"
)

// DrillRepo encapsulates all database queries related to drills.  Reads
// populate the referenced design through a join.
type DrillRepo struct {
	db *sql.DB
}

// NewDrillRepo constructs a DrillRepo with the provided DB handle.
func NewDrillRepo(db *sql.DB) *DrillRepo {
	return &DrillRepo{db: db}
}

const drillSelect = `SELECT d.id, d.part_num, d.design_id, d.descr, g.id, g.name, g.descr
	FROM drills d LEFT JOIN designs g ON g.id = d.design_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDrill(s rowScanner) (*model.Drill, error) {
	var (
		d                  model.Drill
		gID, gName, gDescr sql.NullString
	)
	if err := s.Scan(&d.ID, &d.PartNum, &d.DesignID, &d.Descr, &gID, &gName, &gDescr); err != nil {
		return nil, err
	}
	if gID.Valid {
		d.Design = &model.Design{ID: gID.String, Name: gName.String, Descr: gDescr.String}
	}
	return &d, nil
}

// Create inserts a new drill.  The caller is responsible for checking that
// DesignID resolves; the foreign key rejects it otherwise.
func (r *DrillRepo) Create(ctx context.Context, d *model.Drill) error {
	id, err := newID()
	if err != nil {
		return err
	}
	const q = "INSERT INTO drills (id, part_num, design_id, descr) VALUES (?, ?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, q, id, d.PartNum, d.DesignID, d.Descr); err != nil {
		return fmt.Errorf("insert drill: %w", err)
	}
	d.ID = id
	return nil
}

// GetByID fetches a drill with its design populated.  It returns
// ErrDrillNotFound if no row matches.
func (r *DrillRepo) GetByID(ctx context.Context, id string) (*model.Drill, error) {
	d, err := scanDrill(r.db.QueryRowContext(ctx, drillSelect+" WHERE d.id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDrillNotFound
		}
		return nil, fmt.Errorf("get drill: %w", err)
	}
	return d, nil
}

// List returns all drills ordered by part number.
func (r *DrillRepo) List(ctx context.Context) ([]*model.Drill, error) {
	return r.list(ctx, drillSelect+" ORDER BY d.part_num, d.id")
}

// ListByDesign returns the drills referencing a design, ordered by part
// number.  An unknown design yields an empty list.
func (r *DrillRepo) ListByDesign(ctx context.Context, designID string) ([]*model.Drill, error) {
	return r.list(ctx, drillSelect+" WHERE d.design_id = ? ORDER BY d.part_num, d.id", designID)
}

// ListPartNums is the selector projection: only ID and PartNum are filled.
func (r *DrillRepo) ListPartNums(ctx context.Context) ([]*model.Drill, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, part_num FROM drills ORDER BY part_num, id")
	if err != nil {
		return nil, fmt.Errorf("list drills: %w", err)
	}
	defer rows.Close()

	out := make([]*model.Drill, 0)
	for rows.Next() {
		d := new(model.Drill)
		if err := rows.Scan(&d.ID, &d.PartNum); err != nil {
			return nil, fmt.Errorf("scan drill: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list drills: %w", err)
	}
	return out, nil
}

func (r *DrillRepo) list(ctx context.Context, q string, args ...any) ([]*model.Drill, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list drills: %w", err)
	}
	defer rows.Close()

	out := make([]*model.Drill, 0)
	for rows.Next() {
		d, err := scanDrill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan drill: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list drills: %w", err)
	}
	return out, nil
}

// UpdateByID replaces part_num, design_id and descr of the drill identified
// by d.ID.
func (r *DrillRepo) UpdateByID(ctx context.Context, d *model.Drill) error {
	const q = "UPDATE drills SET part_num = ?, design_id = ?, descr = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, d.PartNum, d.DesignID, d.Descr, d.ID)
	if err != nil {
		return fmt.Errorf("update drill: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDrillNotFound
	}
	return nil
}

// DeleteByID removes a drill provided no record references it.  See
// DesignRepo.DeleteByID for the error contract.
func (r *DrillRepo) DeleteByID(ctx context.Context, id string) error {
	const q = `DELETE FROM drills
	           WHERE id = ? AND NOT EXISTS (SELECT 1 FROM records WHERE drill_id = ?)`
	res, err := r.db.ExecContext(ctx, q, id, id)
	if err != nil {
		return fmt.Errorf("delete drill: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrConflict
}

// Count returns the number of drills.
func (r *DrillRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM drills").Scan(&n); err != nil {
		return 0, fmt.Errorf("count drills: %w", err)
	}
	return n, nil
}
