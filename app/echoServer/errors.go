// app/echoServer/errors.go
package echoServer

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// schema validation failures surface from the server with this code
const documentValidationFailure = 121

// ErrorHandler is the catch-all translation layer for errors that escape
// the controllers: duplicate keys and schema validation map to 400,
// malformed ids to 404, everything else to an opaque 500. Responses always
// use the {success, message} envelope.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := "Server error"

		var he *echo.HTTPError
		switch {
		case errors.As(err, &he):
			status = he.Code
			if s, ok := he.Message.(string); ok {
				msg = s
			} else {
				msg = http.StatusText(status)
			}
		case mongo.IsDuplicateKeyError(err):
			status, msg = http.StatusBadRequest, "Duplicate field value entered"
		case isSchemaValidationErr(err):
			status, msg = http.StatusBadRequest, "Validation failed"
		case errors.Is(err, primitive.ErrInvalidHex):
			status, msg = http.StatusNotFound, "Resource not found"
		}

		if status >= http.StatusInternalServerError {
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			log.Error("unhandled error",
				"err", err,
				"req_id", rid,
				"method", c.Request().Method,
				"path", c.Path(),
			)
		}

		_ = c.JSON(status, echo.Map{"success": false, "message": msg})
	}
}

func isSchemaValidationErr(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == documentValidationFailure {
				return true
			}
		}
	}
	var ce mongo.CommandError
	return errors.As(err, &ce) && ce.Code == documentValidationFailure
}
