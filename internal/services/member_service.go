package services

import (
	"database/sql"
	"errors"
	"fmt"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrMemberPhoneTaken = errors.New("a member with this phone number already exists")
)

// --- DTOs ---

// CreateMemberRequest is used for enrolling a new loyalty member.
type CreateMemberRequest struct {
	FullName    string  `json:"full_name" binding:"required"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email"`
	DateOfBirth *string `json:"date_of_birth"`
	Notes       *string `json:"notes"`
}

// AdjustPointsRequest applies a signed delta to a member's points balance.
type AdjustPointsRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// --- MemberService Interface ---
type MemberService interface {
	CreateMember(req CreateMemberRequest) (*models.Member, error)
	GetMembers(page, pageSize int, searchTerm *string) ([]models.Member, int, error)
	GetMemberByID(id int64) (*models.Member, error)
	UpdateMember(id int64, req CreateMemberRequest) (*models.Member, error)
	AdjustPoints(id int64, req AdjustPointsRequest) (int, error)
	DeleteMember(id int64) error
}

type memberService struct {
	memberRepo repositories.MemberRepository
	db         *sql.DB
}

// NewMemberService creates a new instance of MemberService.
func NewMemberService(mr repositories.MemberRepository, db *sql.DB) MemberService {
	return &memberService{memberRepo: mr, db: db}
}

func (s *memberService) CreateMember(req CreateMemberRequest) (*models.Member, error) {
	member := models.Member{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
		Notes:       req.Notes,
	}

	if _, err := s.memberRepo.CreateMember(s.db, &member); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrMemberPhoneTaken
		}
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return &member, nil
}

func (s *memberService) GetMembers(page, pageSize int, searchTerm *string) ([]models.Member, int, error) {
	members, totalCount, err := s.memberRepo.GetMembers(page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get members: %w", err)
	}
	return members, totalCount, nil
}

func (s *memberService) GetMemberByID(id int64) (*models.Member, error) {
	member, err := s.memberRepo.GetMemberByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member by ID: %w", err)
	}
	return member, nil
}

func (s *memberService) UpdateMember(id int64, req CreateMemberRequest) (*models.Member, error) {
	member, err := s.memberRepo.GetMemberByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to fetch member for update: %w", err)
	}

	member.FullName = req.FullName
	member.PhoneNumber = req.PhoneNumber
	member.Email = req.Email
	member.DateOfBirth = req.DateOfBirth
	member.Notes = req.Notes

	if err := s.memberRepo.UpdateMember(s.db, member); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrMemberPhoneTaken
		}
		return nil, fmt.Errorf("failed to update member: %w", err)
	}
	return member, nil
}

func (s *memberService) AdjustPoints(id int64, req AdjustPointsRequest) (int, error) {
	newBalance, err := s.memberRepo.AdjustLoyaltyPoints(s.db, id, req.Delta)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrMemberNotFound
		}
		return 0, fmt.Errorf("failed to adjust loyalty points: %w", err)
	}
	return newBalance, nil
}

func (s *memberService) DeleteMember(id int64) error {
	if err := s.memberRepo.DeleteMember(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}
