package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type errorPage struct {
	Title   string
	Status  int
	Message string
}

// HTTPErrorHandler renders error.html for every error that reaches echo.
// Store failures are logged and shown as a generic 500 page.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}

	logger := zerolog.Ctx(c.Request().Context())
	if code >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("request failed")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	page := errorPage{Title: http.StatusText(code), Status: code, Message: msg}
	if rerr := c.Render(code, "error.html", page); rerr != nil {
		logger.Error().Err(rerr).Msg("render error page")
		_ = c.String(code, msg)
	}
}
