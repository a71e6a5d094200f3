package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-be/internal/models"
	"booking-be/internal/service"
)

type BookingController struct {
	bookingService service.BookingService
}

func NewBookingController(bookingService service.BookingService) *BookingController {
	return &BookingController{
		bookingService: bookingService,
	}
}

// Create handles POST /bookings
func (bc *BookingController) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.CreateBookingRequest
	if !bindJSON(c, &req, "Service ID, start date, and end date are required") {
		return
	}

	booking, err := bc.bookingService.CreateBooking(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err, "Booking not found", "")
		return
	}
	respond(c, http.StatusCreated, "Appointment Created Successfully", booking)
}

// ListMine handles GET /bookings/me
func (bc *BookingController) ListMine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	bookings, err := bc.bookingService.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		internalError(c, err)
		return
	}
	respond(c, http.StatusOK, "Appointment List", bookings)
}

// Update handles PUT /bookings/:id
func (bc *BookingController) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Booking not found")
	if !ok {
		return
	}
	var req models.UpdateBookingRequest
	if !bindJSON(c, &req, "Start date, and end date are required") {
		return
	}

	booking, err := bc.bookingService.UpdateBooking(c.Request.Context(), userID, id, &req)
	if err != nil {
		fail(c, err, "Booking not found", "Not authorized to update this booking")
		return
	}
	respond(c, http.StatusOK, "Appointment Updated Successfully", booking)
}

// UpdateStatus handles PATCH /bookings/:id/status
func (bc *BookingController) UpdateStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Booking not found")
	if !ok {
		return
	}
	var req models.UpdateBookingStatusRequest
	if !bindJSON(c, &req, "Status is required") {
		return
	}

	booking, err := bc.bookingService.UpdateBookingStatus(c.Request.Context(), userID, id, &req)
	if err != nil {
		fail(c, err, "Booking not found", "Not authorized to update this booking")
		return
	}
	respond(c, http.StatusOK, "Appointment Status Updated Successfully", booking)
}

// Delete handles DELETE /bookings/:id
func (bc *BookingController) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Booking not found")
	if !ok {
		return
	}

	if err := bc.bookingService.DeleteBooking(c.Request.Context(), userID, id); err != nil {
		fail(c, err, "Booking not found", "Not authorized to delete this booking")
		return
	}
	respond(c, http.StatusOK, "Booking deleted successfully", nil)
}
