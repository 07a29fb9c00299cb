package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/drill-inventory/internal/model"
	"github.com/iliyamo/drill-inventory/internal/queue"
	"github.com/iliyamo/drill-inventory/internal/service"
)

// DesignStore is the design persistence used by the catalog pages.
type DesignStore interface {
	Create(ctx context.Context, d *model.Design) error
	GetByID(ctx context.Context, id string) (*model.Design, error)
	FindByName(ctx context.Context, name string) (*model.Design, error)
	List(ctx context.Context) ([]*model.Design, error)
	ListNames(ctx context.Context) ([]*model.Design, error)
	UpdateByID(ctx context.Context, d *model.Design) error
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// DrillStore is the drill persistence used by the catalog pages.
type DrillStore interface {
	Create(ctx context.Context, d *model.Drill) error
	GetByID(ctx context.Context, id string) (*model.Drill, error)
	List(ctx context.Context) ([]*model.Drill, error)
	ListByDesign(ctx context.Context, designID string) ([]*model.Drill, error)
	ListPartNums(ctx context.Context) ([]*model.Drill, error)
	UpdateByID(ctx context.Context, d *model.Drill) error
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// RecordStore is the record persistence used by the catalog pages.
type RecordStore interface {
	Create(ctx context.Context, r *model.Record) error
	GetByID(ctx context.Context, id string) (*model.Record, error)
	List(ctx context.Context) ([]*model.Record, error)
	ListByDrill(ctx context.Context, drillID string) ([]*model.Record, error)
	UpdateByID(ctx context.Context, r *model.Record) error
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	CountByLocation(ctx context.Context, loc model.Location) (int, error)
}

// CatalogHandler serves the /catalog pages for designs, drills and records.
type CatalogHandler struct {
	designs DesignStore
	drills  DrillStore
	records RecordStore
	events  service.Publisher
}

// NewCatalogHandler wires the stores into a handler and panics if any store is
// nil.  A nil publisher disables change events.
func NewCatalogHandler(designs DesignStore, drills DrillStore, records RecordStore, events service.Publisher) *CatalogHandler {
	if designs == nil || drills == nil || records == nil {
		panic("nil store passed to NewCatalogHandler")
	}
	if events == nil {
		events = service.NopPublisher{}
	}
	return &CatalogHandler{designs: designs, drills: drills, records: records, events: events}
}

// publish emits a change event; the publisher logs its own failures and the
// page flow never depends on the broker.
func (h *CatalogHandler) publish(ctx context.Context, entity, action, id, name string) {
	_ = h.events.Publish(ctx, queue.CatalogEvent{
		Entity: entity,
		Action: action,
		ID:     id,
		Name:   name,
		At:     time.Now().UTC(),
	})
}

// formID returns the id submitted in the named form field, falling back to the
// :id path parameter when the body omits it.
func formID(c echo.Context, field string) string {
	if id := c.FormValue(field); id != "" {
		return id
	}
	return c.Param("id")
}

func redirect(c echo.Context, url string) error {
	return c.Redirect(http.StatusFound, url)
}

func badForm(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, "Malformed form submission.").SetInternal(err)
}
