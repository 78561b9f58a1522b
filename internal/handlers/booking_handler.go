package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/clinicdesk/booking-gateway/internal/httperr"
	"github.com/clinicdesk/booking-gateway/internal/httpresp"
	ucBooking "github.com/clinicdesk/booking-gateway/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	submit *ucBooking.Submit
}

func NewBookingHandler(submit *ucBooking.Submit) *BookingHandler {
	return &BookingHandler{submit: submit}
}

// ======================================================
// REQUEST
// ======================================================

type SubmitBookingRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Address string `json:"address"`

	Service         string  `json:"service"`
	ServicePrice    float64 `json:"service_price"`
	ServiceDuration int     `json:"service_duration"`

	Notes string `json:"notes"`
}

// ======================================================
// SUBMIT
// ======================================================

func (h *BookingHandler) Submit(c *gin.Context) {
	var req SubmitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_required_fields", "Name and phone are required.")
		return
	}

	ap, err := h.submit.Execute(c.Request.Context(), ucBooking.SubmitInput{
		SessionID:       c.Param("id"),
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		Age:             req.Age,
		Gender:          req.Gender,
		Address:         req.Address,
		Service:         req.Service,
		ServicePrice:    req.ServicePrice,
		ServiceDuration: req.ServiceDuration,
		Notes:           req.Notes,
	})
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"appointment": ap,
		"message": fmt.Sprintf(
			"Appointment booked: %s on %s at %s.",
			ap.Service, ap.Date, ap.TimeSlot,
		),
	})
}
