package domain

import "time"

// Student is a registered student record.
type Student struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	FatherName   string    `json:"father_name,omitempty"`
	MotherName   string    `json:"mother_name,omitempty"`
	Standard     string    `json:"standard"`
	School       string    `json:"school,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Centre       string    `json:"centre,omitempty"`
	CounsellorID string    `json:"counsellor_id"`
	SeatNumber   string    `json:"seat_number,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Payment records a fee payment taken against a student.
type Payment struct {
	ID           string    `json:"id"`
	ReceiptNo    string    `json:"receipt_no"`
	StudentID    string    `json:"student_id"`
	StudentName  string    `json:"student_name"`
	CounsellorID string    `json:"counsellor_id"`
	Amount       float64   `json:"amount"`
	Mode         string    `json:"mode,omitempty"`
	PaidAt       time.Time `json:"paid_at"`
}

// Visit records a counsellor's school or home visit.
type Visit struct {
	ID           string    `json:"id"`
	CounsellorID string    `json:"counsellor_id"`
	Place        string    `json:"place"`
	Purpose      string    `json:"purpose,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	VisitedAt    time.Time `json:"visited_at"`
}
