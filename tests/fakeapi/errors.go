package fakeapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

var errHTTPNotFound = echo.NewHTTPError(http.StatusNotFound, "not found")

// appHTTPErrorHandler answers errors with the {"message": "..."} body the API uses.
func appHTTPErrorHandler(err error, ctx echo.Context) {
	code := http.StatusInternalServerError
	message := http.StatusText(http.StatusInternalServerError)

	if herr, ok := errors.Cause(err).(*echo.HTTPError); ok {
		code = herr.Code
		if m, ok := herr.Message.(string); ok {
			message = m
		}
	}

	// Send response
	if !ctx.Response().Committed {
		if ctx.Request().Method == http.MethodHead {
			err = ctx.NoContent(code)
		} else {
			err = ctx.JSON(code, echo.Map{"message": message})
		}
		if err != nil {
			ctx.Echo().Logger.Error(err)
		}
	}
}
