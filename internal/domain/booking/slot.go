package booking

import "time"

// WindowDays is the size of the rolling availability window: today plus
// the next six days, in the clinic timezone.
const WindowDays = 7

type TimeSlot struct {
	Time        string `json:"time"`
	Date        string `json:"date"`
	IsAvailable bool   `json:"isAvailable"`
	IsBooked    bool   `json:"isBooked"`
}

// DayBucket holds the slots for one calendar date. An empty bucket means
// the branch is closed, the upstream errored, or the day is fully blocked.
type DayBucket struct {
	Date  string     `json:"date"`
	Slots []TimeSlot `json:"slots"`
}

func (b DayBucket) HasSlots() bool {
	return len(b.Slots) > 0
}

func (b DayBucket) AvailableCount() int {
	n := 0
	for _, s := range b.Slots {
		if s.IsAvailable {
			n++
		}
	}
	return n
}

// FindSlot returns the slot with the given time label, if present.
func (b DayBucket) FindSlot(label string) (TimeSlot, bool) {
	for _, s := range b.Slots {
		if s.Time == label {
			return s, true
		}
	}
	return TimeSlot{}, false
}

// WeekAvailability is the full aggregate for one branch: exactly WindowDays
// buckets, index 0 being the fetch-time today. It is rebuilt whole on every
// branch change, never patched in place.
type WeekAvailability struct {
	BranchID  string                `json:"branch_id"`
	CycleID   string                `json:"cycle_id"`
	FetchedAt time.Time             `json:"fetched_at"`
	Days      [WindowDays]DayBucket `json:"days"`
}

// FirstSelectableIndex is the first day carrying at least one slot, or -1
// when the whole window is empty. Presence of slots, not availability, is
// what makes a day selectable; a day of fully booked slots still renders.
func (w WeekAvailability) FirstSelectableIndex() int {
	for i, d := range w.Days {
		if d.HasSlots() {
			return i
		}
	}
	return -1
}

func (w WeekAvailability) Bucket(index int) (DayBucket, bool) {
	if index < 0 || index >= WindowDays {
		return DayBucket{}, false
	}
	return w.Days[index], true
}
