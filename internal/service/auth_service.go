package service

import (
	"context"
	"errors"
	"fmt"

	"pizza-ordering/internal/models"
	"pizza-ordering/internal/store"
	"pizza-ordering/internal/token"
	"pizza-ordering/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MemberStore is the persistence boundary for member accounts
type MemberStore interface {
	GetMemberByID(ctx context.Context, memberID string) (*models.Member, error)
	MemberExists(ctx context.Context, memberID string) (bool, error)
	CreateMember(ctx context.Context, member *models.Member) error
}

// AuthService handles registration, login and token verification
type AuthService struct {
	store  MemberStore
	issuer *token.Issuer
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(store MemberStore, issuer *token.Issuer) *AuthService {
	return &AuthService{
		store:  store,
		issuer: issuer,
		logger: util.GetLogger(),
	}
}

// Register creates a member account. The credential is bcrypt-hashed;
// plaintext is never stored.
func (s *AuthService) Register(ctx context.Context, memberID, password, memberNm string) error {
	ctx, span := util.StartSpan(ctx, "AuthService.Register")
	defer span.End()

	exists, err := s.store.MemberExists(ctx, memberID)
	if err != nil {
		return fmt.Errorf("failed to check member id: %w", err)
	}
	if exists {
		return ErrDuplicateMember
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	member := &models.Member{
		MemberID:  memberID,
		MemberPwd: string(hashed),
		MemberNm:  memberNm,
	}
	if err := s.store.CreateMember(ctx, member); err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}

	s.logger.Info("Member registered", zap.String("member_id", memberID))
	return nil
}

// Login checks credentials and issues a token
func (s *AuthService) Login(ctx context.Context, memberID, password string) (string, error) {
	ctx, span := util.StartSpan(ctx, "AuthService.Login")
	defer span.End()

	member, err := s.store.GetMemberByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, store.ErrMemberNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to load member: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.MemberPwd), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	tok, err := s.issuer.Issue(memberID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	util.TokensIssuedTotal.Inc()
	s.logger.Info("Member logged in", zap.String("member_id", memberID))
	return tok, nil
}

// VerifyToken verifies a token for another service and returns the
// member identifier
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	memberID, err := s.issuer.Verify(tokenString)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			util.TokenVerifyFailedTotal.WithLabelValues("expired").Inc()
		} else {
			util.TokenVerifyFailedTotal.WithLabelValues("invalid").Inc()
		}
		return "", err
	}
	return memberID, nil
}
