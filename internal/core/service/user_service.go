package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/ports"
)

// UserService manages accounts. The backend has no plain POST /users;
// admin-side creation goes through the registration endpoints.
type UserService struct {
	*resource[domain.User, domain.UserInput]
}

var _ ports.UserService = (*UserService)(nil)

func NewUserService(backend ports.Backend, audit ports.AuditRecorder, log zerolog.Logger) *UserService {
	return &UserService{newResource[domain.User, domain.UserInput](backend, audit, "users", pathUsers, log)}
}

type adminPayload struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Create registers a student or teacher, or creates an admin account.
func (s *UserService) Create(ctx context.Context, in domain.UserInput) error {
	if in.Role == domain.RoleAdmin {
		return s.mutate(ctx, "create", 0, func() error {
			return s.backend.Post(ctx, pathCreateAdmin, adminPayload{
				FullName: in.FullName,
				Email:    in.Email,
				Password: in.Password,
				Role:     in.Role,
			}, nil)
		})
	}

	path, payload, err := registrationRequest(domain.Registration{
		FullName:   in.FullName,
		Email:      in.Email,
		Password:   in.Password,
		Role:       in.Role,
		StreamID:   in.StreamID,
		CodeApogee: in.CodeApogee,
		CNE:        in.CNE,
	})
	if err != nil {
		return err
	}
	return s.mutate(ctx, "create", 0, func() error {
		return s.backend.Post(ctx, path, payload, nil)
	})
}
