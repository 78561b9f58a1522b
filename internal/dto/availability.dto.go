package dto

import (
	"time"

	domain "github.com/clinicdesk/booking-gateway/internal/domain/booking"
	"github.com/clinicdesk/booking-gateway/internal/session"
)

type DayDTO struct {
	Date           string            `json:"date"`
	Weekday        string            `json:"weekday"`
	DayNumber      int               `json:"day_number"`
	HasSlots       bool              `json:"has_slots"`
	AvailableCount int               `json:"available_count"`
	Slots          []domain.TimeSlot `json:"slots"`
}

type SessionDTO struct {
	ID        string `json:"id"`
	Phase     string `json:"phase"`
	BranchID  string `json:"branch_id"`
	DateIndex int    `json:"date_index"`
	DateISO   string `json:"date_iso"`
	TimeLabel string `json:"time_label"`

	FirstSelectableIndex int       `json:"first_selectable_index"`
	FetchedAt            time.Time `json:"fetched_at"`
	Days                 []DayDTO  `json:"days"`
}

func FromSession(st *session.State) SessionDTO {
	out := SessionDTO{
		ID:                   st.ID,
		Phase:                string(st.Selection.Phase),
		BranchID:             st.Selection.BranchID,
		DateIndex:            st.Selection.DateIndex,
		DateISO:              st.Selection.DateISO,
		TimeLabel:            st.Selection.TimeLabel,
		FirstSelectableIndex: st.Week.FirstSelectableIndex(),
		FetchedAt:            st.Week.FetchedAt,
		Days:                 make([]DayDTO, 0, domain.WindowDays),
	}

	for _, d := range st.Week.Days {
		day := DayDTO{
			Date:           d.Date,
			HasSlots:       d.HasSlots(),
			AvailableCount: d.AvailableCount(),
			Slots:          d.Slots,
		}
		if t, err := time.Parse("2006-01-02", d.Date); err == nil {
			day.Weekday = t.Weekday().String()
			day.DayNumber = t.Day()
		}
		out.Days = append(out.Days, day)
	}

	return out
}
