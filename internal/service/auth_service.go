// Package service holds the business rules of the reservation system:
// the login flow over the token service and the reservation admission
// engine. Storage is consumed through narrow interfaces so the rules can
// be exercised against in-memory fakes.
package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/roomescape/reservation-service/internal/apperr"
	"github.com/roomescape/reservation-service/internal/auth"
	"github.com/roomescape/reservation-service/internal/model"
	"github.com/roomescape/reservation-service/internal/repository"
	"github.com/roomescape/reservation-service/internal/utils"
)

// MemberStore is the slice of the member repository the auth flow needs.
type MemberStore interface {
	Create(ctx context.Context, name, email, password string, role model.Role, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.Member, error)
	GetByID(ctx context.Context, id uint64) (model.Member, error)
}

// AuthService implements login, registration and the identity check. It
// owns no session state: a successful login yields a self-contained token
// and every later request is authenticated from that token alone.
type AuthService struct {
	members    MemberStore
	tokens     *auth.TokenService
	bcryptCost int
}

func NewAuthService(members MemberStore, tokens *auth.TokenService, bcryptCost int) *AuthService {
	return &AuthService{members: members, tokens: tokens, bcryptCost: bcryptCost}
}

// Login failure detail is identical for an unknown email and a wrong
// password so the response does not leak which half was wrong.
const badCredentialDetail = "이메일 또는 비밀번호가 올바르지 않습니다."

// Login verifies the credential against the member store and issues a
// signed token for the member.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperr.New(apperr.Validation, "이메일과 비밀번호를 입력해야 합니다.")
	}
	m, err := s.members.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperr.New(apperr.Authentication, badCredentialDetail)
		}
		return "", err
	}
	if !utils.VerifyPassword(m.PasswordHash, password) {
		return "", apperr.New(apperr.Authentication, badCredentialDetail)
	}
	tok, err := s.tokens.Issue(m)
	if err != nil {
		return "", err
	}
	return tok, nil
}

// Register creates a new customer member. Administrators are provisioned
// out of band, never through this endpoint.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (model.Member, error) {
	if name == "" || email == "" || password == "" {
		return model.Member{}, apperr.New(apperr.Validation, "이름과 이메일, 비밀번호를 모두 입력해야 합니다.")
	}
	id, err := s.members.Create(ctx, name, email, password, model.RoleCustomer, s.bcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return model.Member{}, apperr.New(apperr.Validation, "이미 사용 중인 이메일입니다.")
		}
		return model.Member{}, err
	}
	return model.Member{ID: id, Name: name, Email: email, Role: model.RoleCustomer}, nil
}

// Name resolves the display name of an authenticated caller for the
// login check endpoint. The token is trusted for identity, but the member
// row may have been removed since it was issued.
func (s *AuthService) Name(ctx context.Context, memberID uint64) (string, error) {
	m, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperr.New(apperr.NotFound, "존재하지 않는 회원입니다.")
		}
		return "", err
	}
	return m.Name, nil
}
