package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-be/internal/entities"
	"booking-be/internal/models"
	"booking-be/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestBookingQRContent(t *testing.T) {
	b := &entities.Booking{
		ID:        12,
		ServiceID: 3,
		StartDate: time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC),
		Status:    entities.BookingStatusConfirmed,
	}
	assert.Equal(t, "booking:12;service:3;start:2030-05-01T09:00:00Z;status:confirmed", BookingQRContent(b))
}

func TestPathID(t *testing.T) {
	tests := []struct {
		param string
		id    uint
		ok    bool
	}{
		{"7", 7, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"1.5", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "id", Value: tt.param}}

			id, ok := pathID(c, "Booking not found")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.id, id)
			if !ok {
				assert.Equal(t, http.StatusNotFound, w.Code)
			}
		})
	}
}

func TestFailMapsServiceErrors(t *testing.T) {
	tests := []struct {
		err     error
		code    int
		message string
	}{
		{&service.ValidationError{Message: "Invalid date format"}, http.StatusBadRequest, "Invalid date format"},
		{service.ErrForbidden, http.StatusForbidden, "Not authorized to update this booking"},
		{service.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
		{fmt.Errorf("wrapped: %w", service.ErrServiceNotFound), http.StatusNotFound, "Service not found"},
		{errors.New("pq: relation does not exist"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPut, "/bookings/1", nil)

			fail(c, tt.err, "Booking not found", "Not authorized to update this booking")

			assert.Equal(t, tt.code, w.Code)
			var resp models.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}
