package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/clinicdesk/booking-gateway/internal/httperr"
	"github.com/clinicdesk/booking-gateway/internal/session"
)

// mapBusinessError translates usecase errors into the API's error
// envelope. Unknown errors stay opaque.
func mapBusinessError(c *gin.Context, err error) {
	if errors.Is(err, session.ErrNotFound) {
		httperr.NotFound(c, "session_not_found", "Booking session not found or expired.")
		return
	}

	switch {
	case httperr.IsBusiness(err, "missing_branch"),
		httperr.IsBusiness(err, "no_branch_selected"):
		httperr.BadRequest(c, "missing_branch", "Select a branch first.")

	case httperr.IsBusiness(err, "invalid_date_index"):
		httperr.BadRequest(c, "invalid_date_index", "Date must be within the 7-day window.")

	case httperr.IsBusiness(err, "no_slots_for_date"):
		httperr.BadRequest(c, "no_slots_for_date", "No slots on that date.")

	case httperr.IsBusiness(err, "missing_time"),
		httperr.IsBusiness(err, "no_time_selected"):
		httperr.BadRequest(c, "no_time_selected", "Select a time slot.")

	case httperr.IsBusiness(err, "no_date_selected"):
		httperr.BadRequest(c, "no_date_selected", "Select a date first.")

	case httperr.IsBusiness(err, "slot_not_found"):
		httperr.BadRequest(c, "slot_not_found", "That time is not part of the selected day.")

	case httperr.IsBusiness(err, "slot_booked"):
		httperr.BadRequest(c, "slot_booked", "That time slot is already booked.")

	case httperr.IsBusiness(err, "slot_unavailable"):
		httperr.BadRequest(c, "slot_unavailable", "That time slot is not available.")

	case httperr.IsBusiness(err, "missing_required_fields"):
		httperr.BadRequest(c, "missing_required_fields", "Name and phone are required.")

	case httperr.IsBusiness(err, "invalid_phone"):
		httperr.BadRequest(c, "invalid_phone", "Phone number looks invalid.")

	case httperr.IsBusiness(err, "invalid_email"):
		httperr.BadRequest(c, "invalid_email", "Email address looks invalid.")

	case httperr.IsBusiness(err, "submission_in_flight"):
		httperr.Conflict(c, "submission_in_flight", "A booking for this session is already being submitted.")

	case httperr.IsBusiness(err, "slot_conflict"):
		httperr.Conflict(c, "slot_conflict", conflictMessage(err))

	case httperr.IsBusiness(err, "booking_failed"):
		httperr.BadGateway(c, "booking_failed", upstreamMessage(err, "Booking failed. Please try again."))

	case httperr.IsBusiness(err, "branches_failed"):
		httperr.BadGateway(c, "branches_failed", upstreamMessage(err, "Could not load branches."))

	default:
		httperr.Internal(c, "internal_error", "Something went wrong.")
	}
}

func conflictMessage(err error) string {
	return upstreamMessage(err, "This time slot is no longer available. Please pick another time.")
}

func upstreamMessage(err error, fallback string) string {
	if msg := httperr.BusinessMessage(err); msg != "" {
		return msg
	}
	return fallback
}
