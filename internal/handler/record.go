package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/drill-inventory/internal/model"
	"github.com/iliyamo/drill-inventory/internal/queue"
	"github.com/iliyamo/drill-inventory/internal/repository"
	"github.com/iliyamo/drill-inventory/internal/validation"
)

type recordListPage struct {
	Title   string
	Records []*model.Record
}

type recordPage struct {
	Title  string
	Record *model.Record
}

// recordFormPage serves both flows.  On update Record is the stored row and
// the drill is shown read-only.
type recordFormPage struct {
	Title  string
	Form   validation.RecordForm
	Drills []*model.Drill
	Record *model.Record
	Errors validation.Errors
}

var errRecordNotFound = echo.NewHTTPError(http.StatusNotFound, "Record not found")

func (h *CatalogHandler) renderRecordForm(c echo.Context, status int, page recordFormPage) error {
	if page.Record == nil {
		drills, err := h.drills.ListPartNums(c.Request().Context())
		if err != nil {
			return err
		}
		page.Drills = drills
	}
	return c.Render(status, "record_form.html", page)
}

// updateForm converts the update submission for display next to the stored
// drill reference.
func updateForm(rec *model.Record, f validation.RecordUpdateForm) validation.RecordForm {
	return validation.RecordForm{Drill: rec.DrillID, Amount: f.Amount, Location: f.Location, Descr: f.Descr}
}

// RecordList handles GET /catalog/records.
func (h *CatalogHandler) RecordList(c echo.Context) error {
	records, err := h.records.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "record_list.html", recordListPage{Title: "List of Records", Records: records})
}

// RecordDetail handles GET /catalog/record/:id.
func (h *CatalogHandler) RecordDetail(c echo.Context) error {
	rec, err := h.records.GetByID(c.Request().Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return errRecordNotFound
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "record_detail.html", recordPage{Title: rec.PartNum(), Record: rec})
}

// RecordCreateGet handles GET /catalog/record/create.
func (h *CatalogHandler) RecordCreateGet(c echo.Context) error {
	form := validation.RecordForm{Location: string(model.DefaultLocation)}
	return h.renderRecordForm(c, http.StatusOK, recordFormPage{Title: "Create Record", Form: form})
}

// RecordCreatePost handles POST /catalog/record/create.
func (h *CatalogHandler) RecordCreatePost(c echo.Context) error {
	ctx := c.Request().Context()
	var form validation.RecordForm
	if err := c.Bind(&form); err != nil {
		return badForm(err)
	}
	in, errs := validation.CheckRecord(&form)
	if errs == nil {
		if _, err := h.drills.GetByID(ctx, in.DrillID); err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			errs = errs.Add("drill", "Drill not found.")
		}
	}
	if errs != nil {
		return h.renderRecordForm(c, http.StatusUnprocessableEntity,
			recordFormPage{Title: "Create Record", Form: form, Errors: errs})
	}

	rec := in.Record()
	if err := h.records.Create(ctx, rec); err != nil {
		return err
	}
	created, err := h.records.GetByID(ctx, rec.ID)
	if err != nil {
		return err
	}
	h.publish(ctx, model.KindRecord, queue.ActionCreated, created.ID, created.PartNum())
	return redirect(c, created.URL())
}

// RecordUpdateGet handles GET /catalog/record/:id/update.
func (h *CatalogHandler) RecordUpdateGet(c echo.Context) error {
	rec, err := h.records.GetByID(c.Request().Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return errRecordNotFound
	}
	if err != nil {
		return err
	}
	form := updateForm(rec, validation.RecordUpdateFormFrom(rec))
	return h.renderRecordForm(c, http.StatusOK, recordFormPage{Title: "Update Record", Form: form, Record: rec})
}

// RecordUpdatePost handles POST /catalog/record/:id/update.  The drill
// reference is not editable and is carried over from the stored record.
func (h *CatalogHandler) RecordUpdatePost(c echo.Context) error {
	ctx := c.Request().Context()
	stored, err := h.records.GetByID(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return errRecordNotFound
	}
	if err != nil {
		return err
	}

	var form validation.RecordUpdateForm
	if err := c.Bind(&form); err != nil {
		return badForm(err)
	}
	in, errs := validation.CheckRecordUpdate(&form)
	if errs != nil {
		return h.renderRecordForm(c, http.StatusUnprocessableEntity,
			recordFormPage{Title: "Update Record", Form: updateForm(stored, form), Record: stored, Errors: errs})
	}

	rec := in.Record()
	rec.ID = stored.ID
	rec.DrillID = stored.DrillID
	if err := h.records.UpdateByID(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errRecordNotFound
		}
		return err
	}
	h.publish(ctx, model.KindRecord, queue.ActionUpdated, rec.ID, stored.PartNum())
	return redirect(c, rec.URL())
}

// RecordDeleteGet handles GET /catalog/record/:id/delete.
func (h *CatalogHandler) RecordDeleteGet(c echo.Context) error {
	rec, err := h.records.GetByID(c.Request().Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return redirect(c, model.ListURL(model.KindRecord))
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "record_delete.html", recordPage{Title: "Delete Record", Record: rec})
}

// RecordDeletePost handles POST /catalog/record/:id/delete.  Records have no
// dependents so the delete is unconditional.
func (h *CatalogHandler) RecordDeletePost(c echo.Context) error {
	ctx := c.Request().Context()
	listURL := model.ListURL(model.KindRecord)

	rec, err := h.records.GetByID(ctx, formID(c, "recordid"))
	if errors.Is(err, repository.ErrNotFound) {
		return redirect(c, listURL)
	}
	if err != nil {
		return err
	}
	if err := h.records.DeleteByID(ctx, rec.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	h.publish(ctx, model.KindRecord, queue.ActionDeleted, rec.ID, rec.PartNum())
	return redirect(c, listURL)
}
