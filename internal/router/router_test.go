package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/drill-inventory/internal/handler"
	"github.com/iliyamo/drill-inventory/internal/middleware"
	"github.com/iliyamo/drill-inventory/internal/repository"
	"github.com/iliyamo/drill-inventory/internal/testutil"
)

func TestCatalogRoutes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := handler.NewCatalogHandler(repository.NewDesignRepo(db), repository.NewDrillRepo(db), repository.NewRecordRepo(db), nil)

	e := echo.New()
	RegisterRoutes(e, middleware.NewMetrics(prometheus.NewRegistry()))
	RegisterCatalog(e, h)

	got := map[string]bool{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = true
	}

	want := []string{
		"GET /", "GET /healthz", "GET /metrics", "GET /catalog/",
	}
	for _, kind := range []string{"design", "drill", "record"} {
		want = append(want,
			"GET /catalog/"+kind+"s",
			"GET /catalog/"+kind+"/create",
			"POST /catalog/"+kind+"/create",
			"GET /catalog/"+kind+"/:id",
			"GET /catalog/"+kind+"/:id/delete",
			"POST /catalog/"+kind+"/:id/delete",
			"GET /catalog/"+kind+"/:id/update",
			"POST /catalog/"+kind+"/:id/update",
		)
	}
	for _, w := range want {
		assert.True(t, got[w], "missing route %s", w)
	}
}

func TestCreateIsNotReadAsID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := handler.NewCatalogHandler(repository.NewDesignRepo(db), repository.NewDrillRepo(db), repository.NewRecordRepo(db), nil)

	e := echo.New()
	var matched string
	RegisterCatalog(e, h, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			matched = c.Path()
			return c.NoContent(http.StatusNoContent)
		}
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/drill/create", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "/catalog/drill/create", matched)
}
