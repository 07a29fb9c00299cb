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

type designListPage struct {
	Title   string
	Designs []*model.Design
}

type designPage struct {
	Title  string
	Design *model.Design
	Drills []*model.Drill
}

type designFormPage struct {
	Title  string
	Form   validation.DesignForm
	Errors validation.Errors
}

var errDesignNotFound = echo.NewHTTPError(http.StatusNotFound, "Design not found")

// designWithDrills loads a design and the drills that reference it in
// parallel. The design lookup error is reported ahead of the list error.
func (h *CatalogHandler) designWithDrills(ctx context.Context, id string) (*model.Design, []*model.Drill, error) {
	var (
		design    *model.Design
		drills    []*model.Drill
		designErr error
		g         errgroup.Group
	)
	g.Go(func() error { design, designErr = h.designs.GetByID(ctx, id); return nil })
	g.Go(func() (err error) { drills, err = h.drills.ListByDesign(ctx, id); return })
	listErr := g.Wait()
	if designErr != nil {
		return nil, nil, designErr
	}
	if listErr != nil {
		return nil, nil, listErr
	}
	return design, drills, nil
}

// DesignList handles GET /catalog/designs.
func (h *CatalogHandler) DesignList(c echo.Context) error {
	designs, err := h.designs.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "design_list.html", designListPage{Title: "List of Designs", Designs: designs})
}

// DesignDetail handles GET /catalog/design/:id.
func (h *CatalogHandler) DesignDetail(c echo.Context) error {
	design, drills, err := h.designWithDrills(c.Request().Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return errDesignNotFound
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "design_detail.html", designPage{Title: "Design Detail", Design: design, Drills: drills})
}

// DesignCreateGet handles GET /catalog/design/create.
func (h *CatalogHandler) DesignCreateGet(c echo.Context) error {
	return c.Render(http.StatusOK, "design_form.html", designFormPage{Title: "Create Design"})
}

// DesignCreatePost handles POST /catalog/design/create.  Submitting a name
// that already exists redirects to the existing design instead of creating a
// duplicate.
func (h *CatalogHandler) DesignCreatePost(c echo.Context) error {
	ctx := c.Request().Context()
	var form validation.DesignForm
	if err := c.Bind(&form); err != nil {
		return badForm(err)
	}
	in, errs := validation.CheckDesign(&form)
	if errs != nil {
		return c.Render(http.StatusUnprocessableEntity, "design_form.html",
			designFormPage{Title: "Create Design", Form: form, Errors: errs})
	}

	existing, err := h.designs.FindByName(ctx, in.Name)
	switch {
	case err == nil:
		return redirect(c, existing.URL())
	case !errors.Is(err, repository.ErrNotFound):
		return err
	}

	design := in.Design()
	if err := h.designs.Create(ctx, design); err != nil {
		return err
	}
	h.publish(ctx, model.KindDesign, queue.ActionCreated, design.ID, design.Name)
	return redirect(c, design.URL())
}

// DesignUpdateGet handles GET /catalog/design/:id/update.
func (h *CatalogHandler) DesignUpdateGet(c echo.Context) error {
	design, err := h.designs.GetByID(c.Request().Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return errDesignNotFound
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "design_form.html",
		designFormPage{Title: "Update Design", Form: validation.DesignFormFrom(design)})
}

// DesignUpdatePost handles POST /catalog/design/:id/update.  The id in the
// path is kept; only name and description change.
func (h *CatalogHandler) DesignUpdatePost(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	if _, err := h.designs.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errDesignNotFound
		}
		return err
	}

	var form validation.DesignForm
	if err := c.Bind(&form); err != nil {
		return badForm(err)
	}
	in, errs := validation.CheckDesign(&form)
	if errs != nil {
		return c.Render(http.StatusUnprocessableEntity, "design_form.html",
			designFormPage{Title: "Update Design", Form: form, Errors: errs})
	}

	design := in.Design()
	design.ID = id
	if err := h.designs.UpdateByID(ctx, design); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errDesignNotFound
		}
		return err
	}
	h.publish(ctx, model.KindDesign, queue.ActionUpdated, design.ID, design.Name)
	return redirect(c, design.URL())
}

// DesignDeleteGet handles GET /catalog/design/:id/delete.  A design that
// no longer exists sends the user back to the list.
func (h *CatalogHandler) DesignDeleteGet(c echo.Context) error {
	design, drills, err := h.designWithDrills(c.Request().Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return redirect(c, model.ListURL(model.KindDesign))
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "design_delete.html", designPage{Title: "Delete Design", Design: design, Drills: drills})
}

// DesignDeletePost handles POST /catalog/design/:id/delete.  While drills
// still reference the design the confirmation page is shown again.
func (h *CatalogHandler) DesignDeletePost(c echo.Context) error {
	ctx := c.Request().Context()
	listURL := model.ListURL(model.KindDesign)

	design, drills, err := h.designWithDrills(ctx, formID(c, "designid"))
	if errors.Is(err, repository.ErrNotFound) {
		return redirect(c, listURL)
	}
	if err != nil {
		return err
	}
	if len(drills) > 0 {
		return c.Render(http.StatusOK, "design_delete.html", designPage{Title: "Delete Design", Design: design, Drills: drills})
	}

	switch err := h.designs.DeleteByID(ctx, design.ID); {
	case errors.Is(err, repository.ErrConflict):
		// a drill was added between the check and the delete
		if drills, err = h.drills.ListByDesign(ctx, design.ID); err != nil {
			return err
		}
		return c.Render(http.StatusOK, "design_delete.html", designPage{Title: "Delete Design", Design: design, Drills: drills})
	case errors.Is(err, repository.ErrNotFound):
		return redirect(c, listURL)
	case err != nil:
		return err
	}
	h.publish(ctx, model.KindDesign, queue.ActionDeleted, design.ID, design.Name)
	return redirect(c, listURL)
}
