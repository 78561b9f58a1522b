package clinicapi

// Wire types for the external clinic API. The envelope shapes belong to the
// upstream service; this package only mirrors what the call sites consume.

type slotEntry struct {
	Time        string `json:"time"`
	IsAvailable bool   `json:"isAvailable"`
	IsBooked    bool   `json:"isBooked"`
}

type availabilityEnvelope struct {
	Success        bool        `json:"success"`
	AvailableSlots []slotEntry `json:"availableSlots"`
	Message        string      `json:"message"`
}

type Branch struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type branchesEnvelope struct {
	Success  bool     `json:"success"`
	Branches []Branch `json:"branches"`
	Total    int      `json:"total"`
	Message  string   `json:"message"`
}

// Patient is the contact block of a booking request. Name and Contact are
// the only fields the upstream requires.
type Patient struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Contact string `json:"contact"`
	Age     int    `json:"age,omitempty"`
	Gender  string `json:"gender,omitempty"`
	Address string `json:"address,omitempty"`
}

type CreateAppointmentRequest struct {
	BranchID        string  `json:"branchId"`
	Service         string  `json:"service"`
	Date            string  `json:"date"`
	TimeSlot        string  `json:"timeSlot"`
	ServicePrice    float64 `json:"servicePrice,omitempty"`
	ServiceDuration int     `json:"serviceDuration,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	Patient         Patient `json:"patient"`
}

type Appointment struct {
	ID       string `json:"id"`
	BranchID string `json:"branchId"`
	Service  string `json:"service"`
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
	Status   string `json:"status"`
}

type appointmentEnvelope struct {
	Success     bool         `json:"success"`
	Appointment *Appointment `json:"appointment"`
	ErrorCode   string       `json:"error_code"`
	Message     string       `json:"message"`
}
