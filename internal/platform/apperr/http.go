package apperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTP maps a service error onto an echo HTTP error. Validation failures
// become 422 responses carrying the full field→message map; not-found and
// inconsistent-state conditions become 404 and 409. Anything else uses
// fallbackStatus.
func HTTP(err error, fallbackStatus int) *echo.HTTPError {
	var v *ValidationError
	if errors.As(err, &v) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, map[string]interface{}{
			"message": "validation failed",
			"fields":  v.Fields,
		})
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return echo.NewHTTPError(http.StatusNotFound, nf.Error())
	}
	var inc *InconsistentStateError
	if errors.As(err, &inc) {
		return echo.NewHTTPError(http.StatusConflict, inc.Error())
	}
	return echo.NewHTTPError(fallbackStatus, err.Error())
}
