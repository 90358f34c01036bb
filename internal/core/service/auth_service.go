package service

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/api/metrics"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/ports"
)

// AuthService implements login and self-service registration against the
// backend's /auth endpoints.
type AuthService struct {
	backend ports.Backend
	log     zerolog.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(backend ports.Backend, log zerolog.Logger) *AuthService {
	return &AuthService{backend: backend, log: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type meResponse struct {
	ID       int64  `json:"id"`
	Role     string `json:"role"`
	StreamID int64  `json:"stream_id"`
	FullName string `json:"full_name"`
	Name     string `json:"name"`
}

// Login posts the credentials, then asks the backend who the token belongs
// to. When that lookup fails the identity is read from the token payload.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, domain.Identity, error) {
	var resp loginResponse
	if err := s.backend.Post(ctx, pathLogin, loginRequest{Email: email, Password: password}, &resp); err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", domain.Identity{}, fmt.Errorf("login: %w", err)
	}
	if resp.AccessToken == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", domain.Identity{}, domain.ErrMissingToken
	}

	// The token is not in a session yet; carry it for the follow-up call.
	authCtx := domain.ContextWithSession(ctx, domain.NewSession("", resp.AccessToken, domain.Identity{}))

	var me meResponse
	if err := s.backend.Get(authCtx, pathMe, &me); err != nil {
		s.log.Warn().Err(err).Msg("identity lookup failed, decoding token payload")
		metrics.LoginsTotal.WithLabelValues("fallback").Inc()
		return resp.AccessToken, IdentityFromToken(resp.AccessToken), nil
	}

	name := me.FullName
	if name == "" {
		name = me.Name
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return resp.AccessToken, domain.Identity{
		Role:        me.Role,
		DisplayName: name,
		StreamID:    me.StreamID,
		UserID:      me.ID,
	}, nil
}

// IdentityFromToken reads role, display name (sub) and user id from the
// payload segment of a JWT without verifying its signature. The result is
// advisory display data; the backend re-checks every call.
// A malformed token yields an empty identity.
func IdentityFromToken(token string) domain.Identity {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return domain.Identity{}
	}

	var ident domain.Identity
	ident.Role, _ = claims["role"].(string)
	ident.DisplayName, _ = claims["sub"].(string)
	if id, ok := claims["id"].(float64); ok {
		ident.UserID = int64(id)
	}
	return ident
}

type teacherPayload struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	StreamID int64  `json:"stream_id"`
}

type studentPayload struct {
	teacherPayload
	CodeApogee string `json:"code_apoge"`
	CNE        string `json:"cne"`
}

// Register creates a student or teacher account. The payload shape follows
// the chosen role: only students send their Apogée code and CNE.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) error {
	path, payload, err := registrationRequest(reg)
	if err != nil {
		return err
	}
	if err := s.backend.Post(ctx, path, payload, nil); err != nil {
		return fmt.Errorf("register %s: %w", reg.Role, err)
	}
	s.log.Info().Str("role", reg.Role).Str("email", reg.Email).Msg("account registered")
	return nil
}

func registrationRequest(reg domain.Registration) (string, any, error) {
	base := teacherPayload{
		FullName: reg.FullName,
		Email:    reg.Email,
		Password: reg.Password,
		Role:     reg.Role,
		StreamID: reg.StreamID,
	}
	switch reg.Role {
	case domain.RoleStudent:
		return pathRegisterStudent, studentPayload{teacherPayload: base, CodeApogee: reg.CodeApogee, CNE: reg.CNE}, nil
	case domain.RoleTeacher:
		return pathRegisterTeacher, base, nil
	default:
		return "", nil, fmt.Errorf("register %q: %w", reg.Role, domain.ErrInvalidRole)
	}
}
