package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"resto_pos_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// MemberRepository defines the interface for loyalty member database operations.
type MemberRepository interface {
	CreateMember(executor SQLExecutor, member *models.Member) (int64, error)
	GetMemberByID(id int64) (*models.Member, error)
	GetMemberByPhoneNumber(phoneNumber string) (*models.Member, error)
	GetMembers(page, pageSize int, searchTerm *string) ([]models.Member, int, error) // members, total count, error
	UpdateMember(executor SQLExecutor, member *models.Member) error
	AdjustLoyaltyPoints(executor SQLExecutor, memberID int64, delta int) (int, error)
	DeleteMember(executor SQLExecutor, id int64) error
}

type memberRepository struct {
	db *sql.DB
}

// NewMemberRepository creates a new instance of MemberRepository.
func NewMemberRepository(db *sql.DB) MemberRepository {
	return &memberRepository{db: db}
}

// CreateMember inserts a new loyalty member into the database.
func (r *memberRepository) CreateMember(executor SQLExecutor, member *models.Member) (int64, error) {
	query := `INSERT INTO members (full_name, phone_number, email, date_of_birth, loyalty_points, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	currentTime := time.Now()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = currentTime
	}
	if member.UpdatedAt.IsZero() {
		member.UpdatedAt = currentTime
	}

	err := executor.QueryRow(query,
		member.FullName, member.PhoneNumber, member.Email, member.DateOfBirth,
		member.LoyaltyPoints, member.Notes, member.CreatedAt, member.UpdatedAt,
	).Scan(&member.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating member: %v", ErrDatabaseError, err)
	}
	return member.ID, nil
}

func (r *memberRepository) GetMemberByID(id int64) (*models.Member, error) {
	member := &models.Member{}
	query := `SELECT id, full_name, phone_number, email, date_of_birth, loyalty_points, notes, created_at, updated_at
	          FROM members
	          WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&member.ID, &member.FullName, &member.PhoneNumber, &member.Email, &member.DateOfBirth,
		&member.LoyaltyPoints, &member.Notes, &member.CreatedAt, &member.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting member by ID %d: %v", ErrDatabaseError, id, err)
	}
	return member, nil
}

func (r *memberRepository) GetMemberByPhoneNumber(phoneNumber string) (*models.Member, error) {
	member := &models.Member{}
	query := `SELECT id, full_name, phone_number, email, date_of_birth, loyalty_points, notes, created_at, updated_at
	          FROM members
	          WHERE phone_number = $1`
	err := r.db.QueryRow(query, phoneNumber).Scan(
		&member.ID, &member.FullName, &member.PhoneNumber, &member.Email, &member.DateOfBirth,
		&member.LoyaltyPoints, &member.Notes, &member.CreatedAt, &member.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting member by phone number: %v", ErrDatabaseError, err)
	}
	return member, nil
}

func (r *memberRepository) GetMembers(page, pageSize int, searchTerm *string) ([]models.Member, int, error) {
	members := []models.Member{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
        SELECT id, full_name, phone_number, email, date_of_birth, loyalty_points, notes, created_at, updated_at,
               COUNT(*) OVER() as total_count
        FROM members
    `)

	var args []interface{}
	argCounter := 1

	if searchTerm != nil && *searchTerm != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE full_name ILIKE $%d OR phone_number ILIKE $%d", argCounter, argCounter))
		args = append(args, "%"+*searchTerm+"%")
		argCounter++
	}
	queryBuilder.WriteString(" ORDER BY full_name ASC")

	if pageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, pageSize)
		argCounter++
		if page > 0 {
			offset := (page - 1) * pageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying members: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Member
		err := rows.Scan(
			&m.ID, &m.FullName, &m.PhoneNumber, &m.Email, &m.DateOfBirth,
			&m.LoyaltyPoints, &m.Notes, &m.CreatedAt, &m.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning member: %v", ErrDatabaseError, err)
		}
		members = append(members, m)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating member rows: %v", ErrDatabaseError, err)
	}
	return members, totalCount, nil
}

func (r *memberRepository) UpdateMember(executor SQLExecutor, member *models.Member) error {
	query := `UPDATE members
	          SET full_name = $1, phone_number = $2, email = $3, date_of_birth = $4, loyalty_points = $5, notes = $6, updated_at = $7
	          WHERE id = $8`

	member.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		member.FullName, member.PhoneNumber, member.Email, member.DateOfBirth,
		member.LoyaltyPoints, member.Notes, member.UpdatedAt, member.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating member ID %d: %v", ErrDatabaseError, member.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for member update ID %d: %v", ErrDatabaseError, member.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustLoyaltyPoints applies a delta to a member's points balance and
// returns the new balance.
func (r *memberRepository) AdjustLoyaltyPoints(executor SQLExecutor, memberID int64, delta int) (int, error) {
	query := `UPDATE members
	          SET loyalty_points = loyalty_points + $1, updated_at = $2
	          WHERE id = $3
	          RETURNING loyalty_points`

	var newBalance int
	err := executor.QueryRow(query, delta, time.Now(), memberID).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: adjusting loyalty points for member ID %d: %v", ErrDatabaseError, memberID, err)
	}
	return newBalance, nil
}

func (r *memberRepository) DeleteMember(executor SQLExecutor, id int64) error {
	query := `DELETE FROM members WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting member ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting member ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
