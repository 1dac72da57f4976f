package models

import "time"

// StaffMember represents an employee
type StaffMember struct {
	ID          int64     `json:"id" db:"id"`
	UserID      *int64    `json:"user_id,omitempty" db:"user_id"` // Link to users table for login
	FullName    string    `json:"full_name" db:"full_name" binding:"required"`
	PhoneNumber *string   `json:"phone_number,omitempty" db:"phone_number"`
	Position    *string   `json:"position,omitempty" db:"position"`
	HireDate    *string   `json:"hire_date,omitempty" db:"hire_date"` // Store as string, parse to time.Time when needed
	HourlyRate  *float64  `json:"hourly_rate,omitempty" db:"hourly_rate"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
	User        *User     `json:"user,omitempty"` // For joining with User details
}

// AttendanceRecord represents a clock-in/clock-out pair for a staff member.
// ClockOut is nil while the shift is still open.
type AttendanceRecord struct {
	ID          int64        `json:"id" db:"id"`
	StaffID     int64        `json:"staff_id" db:"staff_id" binding:"required"`
	ClockIn     time.Time    `json:"clock_in" db:"clock_in"`
	ClockOut    *time.Time   `json:"clock_out,omitempty" db:"clock_out"`
	Notes       *string      `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
	StaffMember *StaffMember `json:"staff_member,omitempty"` // For joining with staff details
}
