package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/drill-inventory/internal/model"
)

// Counts are the dashboard totals.
type Counts struct {
	Designs    int
	Drills     int
	Records    int
	TechCenter int
	Warehouse  int
}

type indexPage struct {
	Title  string
	Counts Counts
	Error  string
}

// Index renders the dashboard.  The five counts are fetched concurrently; a
// failed count is reported in a banner while the others are still shown.
func (h *CatalogHandler) Index(c echo.Context) error {
	ctx := c.Request().Context()
	var n Counts

	// no shared context: one failed count must not cancel the rest
	var g errgroup.Group
	g.Go(func() (err error) { n.Drills, err = h.drills.Count(ctx); return })
	g.Go(func() (err error) { n.Designs, err = h.designs.Count(ctx); return })
	g.Go(func() (err error) { n.Records, err = h.records.Count(ctx); return })
	g.Go(func() (err error) {
		n.TechCenter, err = h.records.CountByLocation(ctx, model.LocationTechCenter)
		return
	})
	g.Go(func() (err error) {
		n.Warehouse, err = h.records.CountByLocation(ctx, model.LocationWarehouse)
		return
	})

	page := indexPage{Title: "TCT Tech Center Inventory"}
	if err := g.Wait(); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("dashboard counts")
		page.Error = "Some inventory counts could not be loaded."
	}
	page.Counts = n
	return c.Render(http.StatusOK, "index.html", page)
}

// Home redirects the site root to the catalog dashboard.
func Home(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/catalog/")
}
