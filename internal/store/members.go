package store

import (
	"context"
	"database/sql"
	"errors"

	"pizza-ordering/internal/models"
)

// ErrMemberNotFound is returned when no member matches the identifier
var ErrMemberNotFound = errors.New("member not found")

// GetMemberByID retrieves a member by identifier
func (s *Store) GetMemberByID(ctx context.Context, memberID string) (*models.Member, error) {
	var member models.Member
	err := s.db.GetContext(ctx, &member, "SELECT * FROM member WHERE member_id = $1", memberID)
	if err == sql.ErrNoRows {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// MemberExists checks whether a member identifier is already taken
func (s *Store) MemberExists(ctx context.Context, memberID string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM member WHERE member_id = $1)", memberID)
	return exists, err
}

// CreateMember inserts a new member with an already-hashed credential
func (s *Store) CreateMember(ctx context.Context, member *models.Member) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO member (member_id, member_pwd, member_nm) VALUES ($1, $2, $3)",
		member.MemberID, member.MemberPwd, member.MemberNm)
	return err
}
