package clinicapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/clinicdesk/booking-gateway/internal/domain/booking"
	"github.com/clinicdesk/booking-gateway/internal/httperr"
)

// The upstream signals a lost booking race either with a structured code or,
// on older deployments, only with this substring in the message. Both are
// part of the wire contract and must keep working.
const (
	conflictCode      = "SLOT_CONFLICT"
	conflictSubstring = "no longer available"
)

type Client struct {
	baseURL   string
	authToken string
	http      *http.Client
	log       *zap.Logger
}

func New(baseURL, authToken string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		authToken: authToken,
		http:      &http.Client{Timeout: timeout},
		log:       log,
	}
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

// DayAvailability fetches the slot list for one branch and one calendar
// date. Each returned slot is stamped with the requested date so callers
// never have to re-derive which bucket it belongs to.
func (c *Client) DayAvailability(ctx context.Context, branchID, dateISO string) ([]booking.TimeSlot, error) {
	u := fmt.Sprintf(
		"%s/appointments/availability?branchId=%s&date=%s",
		c.baseURL, url.QueryEscape(branchID), url.QueryEscape(dateISO),
	)

	var env availabilityEnvelope
	if err := c.getJSON(ctx, u, &env); err != nil {
		return nil, err
	}

	if !env.Success {
		return nil, httperr.ErrBusinessMsg("availability_failed", env.Message)
	}

	slots := make([]booking.TimeSlot, len(env.AvailableSlots))
	for i, s := range env.AvailableSlots {
		slots[i] = booking.TimeSlot{
			Time:        s.Time,
			Date:        dateISO,
			IsAvailable: s.IsAvailable,
			IsBooked:    s.IsBooked,
		}
	}

	return slots, nil
}

// --------------------------------------------------
// Branches
// --------------------------------------------------

func (c *Client) ListBranches(ctx context.Context, page, limit int) ([]Branch, int, error) {
	u := fmt.Sprintf("%s/branches?page=%d&limit=%d", c.baseURL, page, limit)

	var env branchesEnvelope
	if err := c.getJSON(ctx, u, &env); err != nil {
		return nil, 0, err
	}

	if !env.Success {
		return nil, 0, httperr.ErrBusinessMsg("branches_failed", env.Message)
	}

	return env.Branches, env.Total, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

// CreateAppointment posts a booking. A lost slot race comes back as the
// business code "slot_conflict"; every other upstream rejection surfaces as
// "booking_failed" carrying the upstream message.
func (c *Client) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/appointments",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	c.setHeaders(httpReq)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env appointmentEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode appointment response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && env.Success {
		if env.Appointment == nil {
			return nil, fmt.Errorf("upstream accepted booking without a payload")
		}
		return env.Appointment, nil
	}

	if isSlotConflict(env.ErrorCode, env.Message) {
		c.log.Warn("slot conflict from upstream",
			zap.String("branch_id", req.BranchID),
			zap.String("date", req.Date),
			zap.String("time_slot", req.TimeSlot),
		)
		return nil, httperr.ErrBusinessMsg("slot_conflict", env.Message)
	}

	return nil, httperr.ErrBusinessMsg("booking_failed", env.Message)
}

func isSlotConflict(code, message string) bool {
	if code == conflictCode {
		return true
	}
	return strings.Contains(message, conflictSubstring)
}

// IsSlotConflict reports whether err is the upstream "slot taken" rejection.
func IsSlotConflict(err error) bool {
	return httperr.IsBusiness(err, "slot_conflict")
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upstream status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
}
