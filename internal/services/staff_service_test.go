package services

import (
	"testing"
	"time"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStaffRepo struct {
	repositories.StaffRepository
	staffByID  map[int64]*models.StaffMember
	openRecord *models.AttendanceRecord
	created    *models.AttendanceRecord
	closedID   int64
}

func (s *stubStaffRepo) GetStaffMemberByID(id int64) (*models.StaffMember, error) {
	staff, ok := s.staffByID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return staff, nil
}

func (s *stubStaffRepo) GetOpenAttendanceRecord(staffID int64) (*models.AttendanceRecord, error) {
	if s.openRecord == nil || s.openRecord.StaffID != staffID {
		return nil, repositories.ErrNotFound
	}
	return s.openRecord, nil
}

func (s *stubStaffRepo) CreateAttendanceRecord(_ repositories.SQLExecutor, record *models.AttendanceRecord) (int64, error) {
	record.ID = 100
	s.created = record
	return record.ID, nil
}

func (s *stubStaffRepo) CloseAttendanceRecord(_ repositories.SQLExecutor, recordID int64, _ time.Time) error {
	s.closedID = recordID
	return nil
}

func TestStaffService_ClockIn(t *testing.T) {
	repo := &stubStaffRepo{
		staffByID: map[int64]*models.StaffMember{5: {ID: 5, FullName: "Dana"}},
	}
	svc := NewStaffService(repo, nil)

	record, err := svc.ClockIn(5, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), record.StaffID)
	assert.False(t, record.ClockIn.IsZero())
	assert.Nil(t, record.ClockOut)
	require.NotNil(t, repo.created)
}

func TestStaffService_ClockIn_UnknownStaff(t *testing.T) {
	svc := NewStaffService(&stubStaffRepo{staffByID: map[int64]*models.StaffMember{}}, nil)

	_, err := svc.ClockIn(99, nil)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestStaffService_ClockIn_ShiftAlreadyOpen(t *testing.T) {
	repo := &stubStaffRepo{
		staffByID:  map[int64]*models.StaffMember{5: {ID: 5, FullName: "Dana"}},
		openRecord: &models.AttendanceRecord{ID: 11, StaffID: 5, ClockIn: time.Now()},
	}
	svc := NewStaffService(repo, nil)

	_, err := svc.ClockIn(5, nil)
	assert.ErrorIs(t, err, ErrShiftAlreadyOpen)
}

func TestStaffService_ClockOut(t *testing.T) {
	repo := &stubStaffRepo{
		staffByID:  map[int64]*models.StaffMember{5: {ID: 5, FullName: "Dana"}},
		openRecord: &models.AttendanceRecord{ID: 11, StaffID: 5, ClockIn: time.Now().Add(-8 * time.Hour)},
	}
	svc := NewStaffService(repo, nil)

	record, err := svc.ClockOut(5)
	require.NoError(t, err)
	require.NotNil(t, record.ClockOut)
	assert.Equal(t, int64(11), repo.closedID)
}

func TestStaffService_ClockOut_NoOpenShift(t *testing.T) {
	repo := &stubStaffRepo{
		staffByID: map[int64]*models.StaffMember{5: {ID: 5, FullName: "Dana"}},
	}
	svc := NewStaffService(repo, nil)

	_, err := svc.ClockOut(5)
	assert.ErrorIs(t, err, ErrNoOpenShift)
}
