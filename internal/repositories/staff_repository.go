package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"resto_pos_backend/internal/models"
)

// StaffRepository defines the interface for staff and attendance database operations.
type StaffRepository interface {
	CreateStaffMember(executor SQLExecutor, staff *models.StaffMember) (int64, error)
	GetStaffMemberByID(id int64) (*models.StaffMember, error)
	GetStaffMembers(page, pageSize int) ([]models.StaffMember, int, error) // staff, total count, error
	UpdateStaffMember(executor SQLExecutor, staff *models.StaffMember) error
	DeleteStaffMember(executor SQLExecutor, id int64) error

	// Attendance methods
	CreateAttendanceRecord(executor SQLExecutor, record *models.AttendanceRecord) (int64, error)
	GetOpenAttendanceRecord(staffID int64) (*models.AttendanceRecord, error)
	CloseAttendanceRecord(executor SQLExecutor, recordID int64, clockOut time.Time) error
	GetAttendanceRecords(staffID int64, from, to *time.Time) ([]models.AttendanceRecord, error)
}

type staffRepository struct {
	db *sql.DB
}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository(db *sql.DB) StaffRepository {
	return &staffRepository{db: db}
}

// --- Staff Methods ---

func (r *staffRepository) CreateStaffMember(executor SQLExecutor, staff *models.StaffMember) (int64, error) {
	query := `INSERT INTO staff_members (user_id, full_name, phone_number, position, hire_date, hourly_rate, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	currentTime := time.Now()
	if staff.CreatedAt.IsZero() {
		staff.CreatedAt = currentTime
	}
	if staff.UpdatedAt.IsZero() {
		staff.UpdatedAt = currentTime
	}

	err := executor.QueryRow(query,
		staff.UserID, staff.FullName, staff.PhoneNumber, staff.Position,
		staff.HireDate, staff.HourlyRate, staff.CreatedAt, staff.UpdatedAt,
	).Scan(&staff.ID)

	if err != nil {
		return 0, fmt.Errorf("%w: creating staff member: %v", ErrDatabaseError, err)
	}
	return staff.ID, nil
}

func (r *staffRepository) GetStaffMemberByID(id int64) (*models.StaffMember, error) {
	staff := &models.StaffMember{}
	query := `SELECT id, user_id, full_name, phone_number, position, hire_date, hourly_rate, created_at, updated_at
	          FROM staff_members
	          WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&staff.ID, &staff.UserID, &staff.FullName, &staff.PhoneNumber, &staff.Position,
		&staff.HireDate, &staff.HourlyRate, &staff.CreatedAt, &staff.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting staff member by ID %d: %v", ErrDatabaseError, id, err)
	}
	return staff, nil
}

func (r *staffRepository) GetStaffMembers(page, pageSize int) ([]models.StaffMember, int, error) {
	staffMembers := []models.StaffMember{}
	totalCount := 0

	query := `SELECT id, user_id, full_name, phone_number, position, hire_date, hourly_rate, created_at, updated_at,
	                 COUNT(*) OVER() as total_count
	          FROM staff_members
	          ORDER BY full_name ASC`

	var args []interface{}
	if pageSize > 0 {
		query += " LIMIT $1"
		args = append(args, pageSize)
		if page > 0 {
			query += " OFFSET $2"
			args = append(args, (page-1)*pageSize)
		}
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying staff members: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.StaffMember
		err := rows.Scan(
			&s.ID, &s.UserID, &s.FullName, &s.PhoneNumber, &s.Position,
			&s.HireDate, &s.HourlyRate, &s.CreatedAt, &s.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning staff member: %v", ErrDatabaseError, err)
		}
		staffMembers = append(staffMembers, s)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating staff member rows: %v", ErrDatabaseError, err)
	}
	return staffMembers, totalCount, nil
}

func (r *staffRepository) UpdateStaffMember(executor SQLExecutor, staff *models.StaffMember) error {
	query := `UPDATE staff_members
	          SET user_id = $1, full_name = $2, phone_number = $3, position = $4, hire_date = $5, hourly_rate = $6, updated_at = $7
	          WHERE id = $8`

	staff.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		staff.UserID, staff.FullName, staff.PhoneNumber, staff.Position,
		staff.HireDate, staff.HourlyRate, staff.UpdatedAt, staff.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating staff member ID %d: %v", ErrDatabaseError, staff.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for staff member update ID %d: %v", ErrDatabaseError, staff.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *staffRepository) DeleteStaffMember(executor SQLExecutor, id int64) error {
	query := `DELETE FROM staff_members WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting staff member ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting staff member ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Attendance Methods ---

func (r *staffRepository) CreateAttendanceRecord(executor SQLExecutor, record *models.AttendanceRecord) (int64, error) {
	query := `INSERT INTO attendance_records (staff_id, clock_in, clock_out, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	currentTime := time.Now()
	if record.ClockIn.IsZero() {
		record.ClockIn = currentTime
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = currentTime
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = currentTime
	}

	err := executor.QueryRow(query,
		record.StaffID, record.ClockIn, record.ClockOut, record.Notes,
		record.CreatedAt, record.UpdatedAt,
	).Scan(&record.ID)

	if err != nil {
		return 0, fmt.Errorf("%w: creating attendance record: %v", ErrDatabaseError, err)
	}
	return record.ID, nil
}

// GetOpenAttendanceRecord returns the staff member's attendance record that
// has no clock-out yet, if any.
func (r *staffRepository) GetOpenAttendanceRecord(staffID int64) (*models.AttendanceRecord, error) {
	record := &models.AttendanceRecord{}
	query := `SELECT id, staff_id, clock_in, clock_out, notes, created_at, updated_at
	          FROM attendance_records
	          WHERE staff_id = $1 AND clock_out IS NULL
	          ORDER BY clock_in DESC
	          LIMIT 1`
	err := r.db.QueryRow(query, staffID).Scan(
		&record.ID, &record.StaffID, &record.ClockIn, &record.ClockOut, &record.Notes,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting open attendance record for staff ID %d: %v", ErrDatabaseError, staffID, err)
	}
	return record, nil
}

func (r *staffRepository) CloseAttendanceRecord(executor SQLExecutor, recordID int64, clockOut time.Time) error {
	query := `UPDATE attendance_records SET clock_out = $1, updated_at = $2 WHERE id = $3 AND clock_out IS NULL`
	result, err := executor.Exec(query, clockOut, time.Now(), recordID)
	if err != nil {
		return fmt.Errorf("%w: closing attendance record ID %d: %v", ErrDatabaseError, recordID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for closing attendance record ID %d: %v", ErrDatabaseError, recordID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *staffRepository) GetAttendanceRecords(staffID int64, from, to *time.Time) ([]models.AttendanceRecord, error) {
	records := []models.AttendanceRecord{}

	query := `SELECT id, staff_id, clock_in, clock_out, notes, created_at, updated_at
	          FROM attendance_records
	          WHERE staff_id = $1`
	args := []interface{}{staffID}
	argCounter := 2

	if from != nil {
		query += fmt.Sprintf(" AND clock_in >= $%d", argCounter)
		args = append(args, *from)
		argCounter++
	}
	if to != nil {
		query += fmt.Sprintf(" AND clock_in <= $%d", argCounter)
		args = append(args, *to)
	}
	query += " ORDER BY clock_in DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying attendance records for staff ID %d: %v", ErrDatabaseError, staffID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec models.AttendanceRecord
		err := rows.Scan(
			&rec.ID, &rec.StaffID, &rec.ClockIn, &rec.ClockOut, &rec.Notes,
			&rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning attendance record: %v", ErrDatabaseError, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating attendance record rows: %v", ErrDatabaseError, err)
	}
	return records, nil
}
