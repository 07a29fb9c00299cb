package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/drill-inventory/internal/model"
)

// DesignRepo encapsulates all database queries related to designs.  It
// depends on a sql.DB connection which should be configured elsewhere.
type DesignRepo struct {
	db *sql.DB
}

// NewDesignRepo constructs a DesignRepo with the provided DB handle.
func NewDesignRepo(db *sql.DB) *DesignRepo {
	return &DesignRepo{db: db}
}

const designColumns = "id, name, descr"

// Create inserts a new design.  On success d.ID holds the assigned id.
func (r *DesignRepo) Create(ctx context.Context, d *model.Design) error {
	id, err := newID()
	if err != nil {
		return err
	}
	const q = "INSERT INTO designs (id, name, descr) VALUES (?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, q, id, d.Name, d.Descr); err != nil {
		return fmt.Errorf("insert design: %w", err)
	}
	d.ID = id
	return nil
}

// GetByID fetches a design by its id.  It returns ErrDesignNotFound if no
// row matches.
func (r *DesignRepo) GetByID(ctx context.Context, id string) (*model.Design, error) {
	const q = "SELECT " + designColumns + " FROM designs WHERE id = ?"
	var d model.Design
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.Name, &d.Descr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDesignNotFound
		}
		return nil, fmt.Errorf("get design: %w", err)
	}
	return &d, nil
}

// FindByName returns the oldest design carrying exactly the given name, or
// ErrDesignNotFound.
func (r *DesignRepo) FindByName(ctx context.Context, name string) (*model.Design, error) {
	const q = "SELECT " + designColumns + " FROM designs WHERE name = ? ORDER BY id LIMIT 1"
	var d model.Design
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&d.ID, &d.Name, &d.Descr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDesignNotFound
		}
		return nil, fmt.Errorf("find design: %w", err)
	}
	return &d, nil
}

// List returns all designs ordered by name.
func (r *DesignRepo) List(ctx context.Context) ([]*model.Design, error) {
	return r.list(ctx, "SELECT "+designColumns+" FROM designs ORDER BY name, id")
}

// ListNames is the selector projection: only ID and Name are filled.
func (r *DesignRepo) ListNames(ctx context.Context) ([]*model.Design, error) {
	return r.list(ctx, "SELECT id, name, '' FROM designs ORDER BY name, id")
}

func (r *DesignRepo) list(ctx context.Context, q string) ([]*model.Design, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	defer rows.Close()

	out := make([]*model.Design, 0)
	for rows.Next() {
		d := new(model.Design)
		if err := rows.Scan(&d.ID, &d.Name, &d.Descr); err != nil {
			return nil, fmt.Errorf("scan design: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	return out, nil
}

// UpdateByID replaces name and descr of the design identified by d.ID.  The
// id itself is never rewritten.
func (r *DesignRepo) UpdateByID(ctx context.Context, d *model.Design) error {
	const q = "UPDATE designs SET name = ?, descr = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, d.Name, d.Descr, d.ID)
	if err != nil {
		return fmt.Errorf("update design: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDesignNotFound
	}
	return nil
}

// DeleteByID removes a design provided no drill references it.  The check
// and the delete are one statement so a drill inserted after the caller's
// own check still blocks the delete.  ErrConflict is returned when drills
// remain, ErrDesignNotFound when the id does not resolve.
func (r *DesignRepo) DeleteByID(ctx context.Context, id string) error {
	const q = `DELETE FROM designs
	           WHERE id = ? AND NOT EXISTS (SELECT 1 FROM drills WHERE design_id = ?)`
	res, err := r.db.ExecContext(ctx, q, id, id)
	if err != nil {
		return fmt.Errorf("delete design: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrConflict
}

// Count returns the number of designs.
func (r *DesignRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM designs").Scan(&n); err != nil {
		return 0, fmt.Errorf("count designs: %w", err)
	}
	return n, nil
}
