// Package router maps URLs onto handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/drill-inventory/internal/handler"
	"github.com/iliyamo/drill-inventory/internal/middleware"
)

// RegisterRoutes registers the operational endpoints and the root redirect.
// The metrics endpoint is only mounted when m is non-nil.
func RegisterRoutes(e *echo.Echo, m *middleware.Metrics) {
	e.GET("/", handler.Home)
	e.GET("/healthz", handler.Health)
	if m != nil {
		e.GET("/metrics", m.Handler())
	}
}

// RegisterCatalog registers the catalog pages under /catalog.  The create
// routes are registered before the :id routes they would otherwise be read
// as; echo prefers static segments anyway, but the order documents intent.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/catalog", mw...)

	g.GET("", h.Index)
	g.GET("/", h.Index)

	// Design routes
	g.GET("/design/create", h.DesignCreateGet)
	g.POST("/design/create", h.DesignCreatePost)
	g.GET("/design/:id/delete", h.DesignDeleteGet)
	g.POST("/design/:id/delete", h.DesignDeletePost)
	g.GET("/design/:id/update", h.DesignUpdateGet)
	g.POST("/design/:id/update", h.DesignUpdatePost)
	g.GET("/design/:id", h.DesignDetail)
	g.GET("/designs", h.DesignList)

	// Drill routes
	g.GET("/drill/create", h.DrillCreateGet)
	g.POST("/drill/create", h.DrillCreatePost)
	g.GET("/drill/:id/delete", h.DrillDeleteGet)
	g.POST("/drill/:id/delete", h.DrillDeletePost)
	g.GET("/drill/:id/update", h.DrillUpdateGet)
	g.POST("/drill/:id/update", h.DrillUpdatePost)
	g.GET("/drill/:id", h.DrillDetail)
	g.GET("/drills", h.DrillList)

	// Record routes
	g.GET("/record/create", h.RecordCreateGet)
	g.POST("/record/create", h.RecordCreatePost)
	g.GET("/record/:id/delete", h.RecordDeleteGet)
	g.POST("/record/:id/delete", h.RecordDeletePost)
	g.GET("/record/:id/update", h.RecordUpdateGet)
	g.POST("/record/:id/update", h.RecordUpdatePost)
	g.GET("/record/:id", h.RecordDetail)
	g.GET("/records", h.RecordList)
}
