package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

var (
	ErrStaffNotFound     = errors.New("staff member not found")
	ErrShiftAlreadyOpen  = errors.New("staff member already has an open shift")
	ErrNoOpenShift       = errors.New("staff member has no open shift")
)

// --- DTOs ---

// CreateStaffRequest is used for creating a staff member record.
type CreateStaffRequest struct {
	UserID      *int64   `json:"user_id"`
	FullName    string   `json:"full_name" binding:"required"`
	PhoneNumber *string  `json:"phone_number"`
	Position    *string  `json:"position"`
	HireDate    *string  `json:"hire_date"`
	HourlyRate  *float64 `json:"hourly_rate"`
}

// --- StaffService Interface ---
type StaffService interface {
	CreateStaffMember(req CreateStaffRequest) (*models.StaffMember, error)
	GetStaffMembers(page, pageSize int) ([]models.StaffMember, int, error)
	GetStaffMemberByID(id int64) (*models.StaffMember, error)
	UpdateStaffMember(id int64, req CreateStaffRequest) (*models.StaffMember, error)
	DeleteStaffMember(id int64) error

	ClockIn(staffID int64, notes *string) (*models.AttendanceRecord, error)
	ClockOut(staffID int64) (*models.AttendanceRecord, error)
	GetAttendance(staffID int64, from, to *time.Time) ([]models.AttendanceRecord, error)
}

type staffService struct {
	staffRepo repositories.StaffRepository
	db        *sql.DB
}

// NewStaffService creates a new instance of StaffService.
func NewStaffService(sr repositories.StaffRepository, db *sql.DB) StaffService {
	return &staffService{staffRepo: sr, db: db}
}

func (s *staffService) CreateStaffMember(req CreateStaffRequest) (*models.StaffMember, error) {
	staff := models.StaffMember{
		UserID:      req.UserID,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Position:    req.Position,
		HireDate:    req.HireDate,
		HourlyRate:  req.HourlyRate,
	}
	if _, err := s.staffRepo.CreateStaffMember(s.db, &staff); err != nil {
		return nil, fmt.Errorf("failed to create staff member: %w", err)
	}
	return &staff, nil
}

func (s *staffService) GetStaffMembers(page, pageSize int) ([]models.StaffMember, int, error) {
	staff, totalCount, err := s.staffRepo.GetStaffMembers(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get staff members: %w", err)
	}
	return staff, totalCount, nil
}

func (s *staffService) GetStaffMemberByID(id int64) (*models.StaffMember, error) {
	staff, err := s.staffRepo.GetStaffMemberByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to get staff member by ID: %w", err)
	}
	return staff, nil
}

func (s *staffService) UpdateStaffMember(id int64, req CreateStaffRequest) (*models.StaffMember, error) {
	staff, err := s.staffRepo.GetStaffMemberByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to fetch staff member for update: %w", err)
	}

	staff.UserID = req.UserID
	staff.FullName = req.FullName
	staff.PhoneNumber = req.PhoneNumber
	staff.Position = req.Position
	staff.HireDate = req.HireDate
	staff.HourlyRate = req.HourlyRate

	if err := s.staffRepo.UpdateStaffMember(s.db, staff); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to update staff member: %w", err)
	}
	return staff, nil
}

func (s *staffService) DeleteStaffMember(id int64) error {
	if err := s.staffRepo.DeleteStaffMember(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrStaffNotFound
		}
		return fmt.Errorf("failed to delete staff member: %w", err)
	}
	return nil
}

// ClockIn opens a new attendance record. A staff member may only have one
// open record at a time.
func (s *staffService) ClockIn(staffID int64, notes *string) (*models.AttendanceRecord, error) {
	if _, err := s.staffRepo.GetStaffMemberByID(staffID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to fetch staff member for clock-in: %w", err)
	}

	if _, err := s.staffRepo.GetOpenAttendanceRecord(staffID); err == nil {
		return nil, ErrShiftAlreadyOpen
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check open attendance record: %w", err)
	}

	record := models.AttendanceRecord{
		StaffID: staffID,
		ClockIn: time.Now(),
		Notes:   notes,
	}
	if _, err := s.staffRepo.CreateAttendanceRecord(s.db, &record); err != nil {
		return nil, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return &record, nil
}

// ClockOut closes the staff member's open attendance record.
func (s *staffService) ClockOut(staffID int64) (*models.AttendanceRecord, error) {
	record, err := s.staffRepo.GetOpenAttendanceRecord(staffID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoOpenShift
		}
		return nil, fmt.Errorf("failed to fetch open attendance record: %w", err)
	}

	clockOut := time.Now()
	if err := s.staffRepo.CloseAttendanceRecord(s.db, record.ID, clockOut); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoOpenShift
		}
		return nil, fmt.Errorf("failed to close attendance record: %w", err)
	}
	record.ClockOut = &clockOut
	return record, nil
}

func (s *staffService) GetAttendance(staffID int64, from, to *time.Time) ([]models.AttendanceRecord, error) {
	records, err := s.staffRepo.GetAttendanceRecords(staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance records: %w", err)
	}
	return records, nil
}
