package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/dovoc/backend/internal/domain/audit"
	"github.com/dovoc/backend/internal/domain/identity"
	"github.com/dovoc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService implements admin account management
type UserService struct {
	users    identity.Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(users identity.Repository, recorder audit.Recorder, logger *zap.Logger) *UserService {
	return &UserService{
		users:    users,
		recorder: recorder,
		logger:   logger,
	}
}

// Create adds a new back-office account. Usernames are unique.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest, actor string) (*UserResponse, error) {
	existing, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this username already exists")
	}

	user, err := identity.NewUser(req.Username, req.Password, req.Name, req.Email, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.ActionCreateUser, actor,
		fmt.Sprintf("User %s created with role %s", user.Username, user.Role))

	resp := ToUserResponse(user)
	return &resp, nil
}

// Get retrieves one user by ID
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List retrieves all back-office accounts
func (s *UserService) List(ctx context.Context) ([]UserResponse, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses, nil
}

// Update edits an account's profile; a non-empty password replaces the
// stored hash
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest, actor string) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := user.UpdateProfile(req.Name, req.Email, identity.Role(req.Role)); err != nil {
		return nil, err
	}
	if req.Password != "" {
		if err := user.ChangePassword(req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.ActionUpdateUser, actor,
		fmt.Sprintf("User %s updated", user.Username))

	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete removes an account. Users cannot delete themselves; that
// would leave a valid token with no account behind it.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID, actor string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if user.Username == actor {
		return shared.NewDomainError("INVALID_INPUT", "You cannot delete your own account")
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.ActionDeleteUser, actor,
		fmt.Sprintf("User %s deleted", user.Username))
	return nil
}
