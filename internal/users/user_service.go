package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/khanghh/vbs/internal/audit"
	"github.com/khanghh/vbs/internal/common"
	"github.com/khanghh/vbs/internal/guard"
	"github.com/khanghh/vbs/internal/lockout"
	"github.com/khanghh/vbs/model"
	"github.com/khanghh/vbs/params"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateUserOptions struct {
	Email    string
	FullName string
	Password string
	Role     model.Role
}

func (o CreateUserOptions) validate() error {
	if _, err := mail.ParseAddress(o.Email); err != nil {
		return guard.NewValidationError("Invalid email address.")
	}
	if strings.TrimSpace(o.FullName) == "" {
		return guard.NewValidationError("Full name is required.")
	}
	if len(o.Password) < params.MinPasswordLength {
		return guard.NewValidationError(fmt.Sprintf("Password must be at least %d characters.", params.MinPasswordLength))
	}
	if !o.Role.Valid() {
		return guard.NewValidationError("Invalid role.")
	}
	return nil
}

type UserService struct {
	guard    *guard.Guard
	userRepo UserRepository
	audit    *audit.Writer
}

func (s *UserService) GetUserByID(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.First(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.FirstByEmail(ctx, lockout.NormalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// CreateUser adds an account without a session check. It backs the
// create-user command used to bootstrap the first administrator.
func (s *UserService) CreateUser(ctx context.Context, opts CreateUserOptions) (*model.User, error) {
	opts.Email = lockout.NormalizeEmail(opts.Email)
	if err := opts.validate(); err != nil {
		return nil, err
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := model.User{
		Email:    opts.Email,
		FullName: strings.TrimSpace(opts.FullName),
		Password: string(passwordHash),
		Role:     opts.Role,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if common.IsDuplicateKey(err) {
			return nil, ErrEmailRegistered
		}
		return nil, err
	}
	s.audit.Log(ctx, audit.Record{
		Action:       audit.ActionUserCreated,
		ResourceType: guard.ResourceUser,
		ResourceID:   user.ID,
		Details:      map[string]any{"email": user.Email, "role": user.Role.String()},
	})
	return &user, nil
}

func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	if _, err := s.guard.RequireRole(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx)
}

// ChangeRole sets another user's role. Administrators cannot change their
// own role, which keeps at least one admin able to undo mistakes.
func (s *UserService) ChangeRole(ctx context.Context, rawID any, rawRole string) error {
	sess, err := s.guard.RequireRole(ctx, model.RoleAdmin)
	if err != nil {
		return err
	}
	id, err := guard.ValidateID(rawID, "user")
	if err != nil {
		return err
	}
	role, err := model.ParseRole(rawRole)
	if err != nil {
		return guard.NewValidationError("Invalid role.")
	}
	if id == sess.UserID {
		return guard.NewValidationError("You cannot change your own role.")
	}
	user, err := s.userRepo.First(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return guard.NewNotFoundError("User not found.")
	}
	if err != nil {
		return err
	}
	if user.Role == role {
		return nil
	}
	if err := s.userRepo.Updates(ctx, id, map[string]interface{}{"role": role}); err != nil {
		return err
	}
	s.audit.Log(ctx, audit.Record{
		UserID:       sess.UserID,
		Action:       audit.ActionUserRoleChanged,
		ResourceType: guard.ResourceUser,
		ResourceID:   id,
		Details:      map[string]any{"from": user.Role.String(), "to": role.String()},
	})
	return nil
}

func NewUserService(g *guard.Guard, userRepo UserRepository, auditWriter *audit.Writer) *UserService {
	return &UserService{
		guard:    g,
		userRepo: userRepo,
		audit:    auditWriter,
	}
}
