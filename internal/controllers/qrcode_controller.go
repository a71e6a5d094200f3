package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"booking-be/internal/entities"
	"booking-be/internal/service"
)

const qrCodeSize = 256

type QRCodeController struct {
	bookingService service.BookingService
}

func NewQRCodeController(bookingService service.BookingService) *QRCodeController {
	return &QRCodeController{
		bookingService: bookingService,
	}
}

// GenerateQRCode handles GET /bookings/:id/qrcode - a check-in code for the owner's booking
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Booking not found")
	if !ok {
		return
	}

	booking, err := qc.bookingService.GetOwnedBooking(c.Request.Context(), userID, id)
	if err != nil {
		fail(c, err, "Booking not found", "Not authorized to view this booking")
		return
	}

	// Generate QR code (medium error recovery)
	qrCode, err := qrcode.New(BookingQRContent(booking), qrcode.Medium)
	if err != nil {
		internalError(c, fmt.Errorf("failed to generate QR code: %w", err))
		return
	}

	pngData, err := qrCode.PNG(qrCodeSize)
	if err != nil {
		internalError(c, fmt.Errorf("failed to encode QR code: %w", err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=booking-%d.png", booking.ID))
	c.Data(http.StatusOK, "image/png", pngData)
}

// BookingQRContent is the text encoded in a booking's QR code
func BookingQRContent(b *entities.Booking) string {
	return fmt.Sprintf("booking:%d;service:%d;start:%s;status:%s",
		b.ID, b.ServiceID, b.StartDate.UTC().Format(time.RFC3339), b.Status)
}
