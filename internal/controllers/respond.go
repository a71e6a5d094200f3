package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"booking-be/internal/middleware"
	"booking-be/internal/models"
	"booking-be/internal/service"
)

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.Response{Message: message, Data: data})
}

// fail maps a service error onto a status code. notFound and forbidden are
// the messages the calling endpoint uses for those outcomes.
func fail(c *gin.Context, err error, notFound, forbidden string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respond(c, http.StatusBadRequest, verr.Message, nil)
	case errors.Is(err, service.ErrForbidden):
		respond(c, http.StatusForbidden, forbidden, nil)
	case errors.Is(err, service.ErrServiceNotFound):
		respond(c, http.StatusNotFound, "Service not found", nil)
	case errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrHospitalNotFound),
		errors.Is(err, service.ErrUserNotFound):
		respond(c, http.StatusNotFound, notFound, nil)
	default:
		internalError(c, err)
	}
}

func internalError(c *gin.Context, err error) {
	zap.L().Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err),
	)
	respond(c, http.StatusInternalServerError, "Internal server error", nil)
}

// bindJSON decodes the body; a malformed body is a 400 with the given message
func bindJSON(c *gin.Context, dest interface{}, message string) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		respond(c, http.StatusBadRequest, message, nil)
		return false
	}
	return true
}

// pathID parses :id. Anything that is not a positive integer cannot name a
// record, so it is answered like a missing one.
func pathID(c *gin.Context, notFound string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respond(c, http.StatusNotFound, notFound, nil)
		return 0, false
	}
	return uint(id), true
}

func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "User not authenticated", nil)
	}
	return userID, ok
}
