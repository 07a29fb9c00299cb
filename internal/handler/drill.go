package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/drill-inventory/internal/model"
	"github.com/iliyamo/drill-inventory/internal/queue"
	"github.com/iliyamo/drill-inventory/internal/repository"
	"github.com/iliyamo/drill-inventory/internal/validation"
)

type drillListPage struct {
	Title  string
	Drills []*model.Drill
}

type drillPage struct {
	Title   string
	Drill   *model.Drill
	Records []*model.Record
}

type drillFormPage struct {
	Title   string
	Form    validation.DrillForm
	Designs []*model.Design
	Errors  validation.Errors
}

var errDrillNotFound = echo.NewHTTPError(http.StatusNotFound, "Drill not found")

// drillWithRecords is designWithDrills for a drill and its records.
func (h *CatalogHandler) drillWithRecords(ctx context.Context, id string) (*model.Drill, []*model.Record, error) {
	var (
		drill    *model.Drill
		records  []*model.Record
		drillErr error
		g        errgroup.Group
	)
	g.Go(func() error { drill, drillErr = h.drills.GetByID(ctx, id); return nil })
	g.Go(func() (err error) { records, err = h.records.ListByDrill(ctx, id); return })
	listErr := g.Wait()
	if drillErr != nil {
		return nil, nil, drillErr
	}
	if listErr != nil {
		return nil, nil, listErr
	}
	return drill, records, nil
}

// renderDrillForm re-reads the design selector and renders the drill form.
func (h *CatalogHandler) renderDrillForm(c echo.Context, status int, page drillFormPage) error {
	designs, err := h.designs.ListNames(c.Request().Context())
	if err != nil {
		return err
	}
	page.Designs = designs
	return c.Render(status, "drill_form.html", page)
}

// checkDrill validates the form and the existence of the referenced design.
func (h *CatalogHandler) checkDrill(ctx context.Context, form *validation.DrillForm) (validation.DrillInput, validation.Errors, error) {
	in, errs := validation.CheckDrill(form)
	if errs != nil {
		return in, errs, nil
	}
	if _, err := h.designs.GetByID(ctx, in.DesignID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return in, validation.Errors{}.Add("design", "Design not found."), nil
		}
		return in, nil, err
	}
	return in, nil, nil
}

// DrillList handles GET /catalog/drills.
func (h *CatalogHandler) DrillList(c echo.Context) error {
	drills, err := h.drills.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "drill_list.html", drillListPage{Title: "List of Drills", Drills: drills})
}

// DrillDetail handles GET /catalog/drill/:id.
func (h *CatalogHandler) DrillDetail(c echo.Context) error {
	drill, records, err := h.drillWithRecords(c.Request().Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return errDrillNotFound
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "drill_detail.html", drillPage{Title: drill.PartNum, Drill: drill, Records: records})
}

// DrillCreateGet handles GET /catalog/drill/create.
func (h *CatalogHandler) DrillCreateGet(c echo.Context) error {
	return h.renderDrillForm(c, http.StatusOK, drillFormPage{Title: "Create Drill"})
}

// DrillCreatePost handles POST /catalog/drill/create.
func (h *CatalogHandler) DrillCreatePost(c echo.Context) error {
	ctx := c.Request().Context()
	var form validation.DrillForm
	if err := c.Bind(&form); err != nil {
		return badForm(err)
	}
	in, errs, err := h.checkDrill(ctx, &form)
	if err != nil {
		return err
	}
	if errs != nil {
		return h.renderDrillForm(c, http.StatusUnprocessableEntity,
			drillFormPage{Title: "Create Drill", Form: form, Errors: errs})
	}

	drill := in.Drill()
	if err := h.drills.Create(ctx, drill); err != nil {
		return err
	}
	h.publish(ctx, model.KindDrill, queue.ActionCreated, drill.ID, drill.PartNum)
	return redirect(c, drill.URL())
}

// DrillUpdateGet handles GET /catalog/drill/:id/update.
func (h *CatalogHandler) DrillUpdateGet(c echo.Context) error {
	drill, err := h.drills.GetByID(c.Request().Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return errDrillNotFound
	}
	if err != nil {
		return err
	}
	return h.renderDrillForm(c, http.StatusOK,
		drillFormPage{Title: "Update Drill", Form: validation.DrillFormFrom(drill)})
}

// DrillUpdatePost handles POST /catalog/drill/:id/update.
func (h *CatalogHandler) DrillUpdatePost(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	if _, err := h.drills.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errDrillNotFound
		}
		return err
	}

	var form validation.DrillForm
	if err := c.Bind(&form); err != nil {
		return badForm(err)
	}
	in, errs, err := h.checkDrill(ctx, &form)
	if err != nil {
		return err
	}
	if errs != nil {
		return h.renderDrillForm(c, http.StatusUnprocessableEntity,
			drillFormPage{Title: "Update Drill", Form: form, Errors: errs})
	}

	drill := in.Drill()
	drill.ID = id
	if err := h.drills.UpdateByID(ctx, drill); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errDrillNotFound
		}
		return err
	}
	h.publish(ctx, model.KindDrill, queue.ActionUpdated, drill.ID, drill.PartNum)
	return redirect(c, drill.URL())
}

// DrillDeleteGet handles GET /catalog/drill/:id/delete.
func (h *CatalogHandler) DrillDeleteGet(c echo.Context) error {
	drill, records, err := h.drillWithRecords(c.Request().Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return redirect(c, model.ListURL(model.KindDrill))
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "drill_delete.html", drillPage{Title: "Delete Drill", Drill: drill, Records: records})
}

// DrillDeletePost handles POST /catalog/drill/:id/delete.  While records
// still reference the drill the confirmation page is shown again.
func (h *CatalogHandler) DrillDeletePost(c echo.Context) error {
	ctx := c.Request().Context()
	listURL := model.ListURL(model.KindDrill)

	drill, records, err := h.drillWithRecords(ctx, formID(c, "drillid"))
	if errors.Is(err, repository.ErrNotFound) {
		return redirect(c, listURL)
	}
	if err != nil {
		return err
	}
	if len(records) > 0 {
		return c.Render(http.StatusOK, "drill_delete.html", drillPage{Title: "Delete Drill", Drill: drill, Records: records})
	}

	switch err := h.drills.DeleteByID(ctx, drill.ID); {
	case errors.Is(err, repository.ErrConflict):
		if records, err = h.records.ListByDrill(ctx, drill.ID); err != nil {
			return err
		}
		return c.Render(http.StatusOK, "drill_delete.html", drillPage{Title: "Delete Drill", Drill: drill, Records: records})
	case errors.Is(err, repository.ErrNotFound):
		return redirect(c, listURL)
	case err != nil:
		return err
	}
	h.publish(ctx, model.KindDrill, queue.ActionDeleted, drill.ID, drill.PartNum)
	return redirect(c, listURL)
}
