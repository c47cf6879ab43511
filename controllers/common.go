// Package controllers holds the thin HTTP layer over the reservation
// engine. Handlers bind payloads, call one service operation and map
// the engine's error classes to HTTP statuses; no business logic lives
// here.
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// respondServiceError translates the engine's error taxonomy into an
// HTTP response. Unknown errors become a generic 500 so internals never
// leak to the caller.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConcurrencyConflict):
		utils.JSONError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrBusinessRule):
		utils.JSONError(c, http.StatusConflict, err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error")
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}
