package users

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/khanghh/vbs/internal/lockout"
	"github.com/khanghh/vbs/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// dummyHash is compared against when the email is unknown so a miss costs
// the same as a wrong password.
var dummyHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("vbs-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
})

// Authenticator verifies email and password and feeds every outcome to the
// lockout tracker.
type Authenticator struct {
	userRepo UserRepository
	tracker  *lockout.Tracker
}

// Authenticate returns the user for a correct email and password. A locked
// account is refused before the password is checked and the error is a
// *lockout.LockedError. Unknown, disabled and wrong-password attempts all
// return ErrInvalidCredentials and count as failures.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = lockout.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := a.tracker.CheckLocked(ctx, email); err != nil {
		return nil, err
	}

	user, err := a.userRepo.FirstByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err != nil {
		bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return nil, a.fail(ctx, email)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil || user.Disabled {
		return nil, a.fail(ctx, email)
	}

	if err := a.tracker.RecordLoginAttempt(ctx, email, true); err != nil {
		return nil, err
	}
	return user, nil
}

func (a *Authenticator) fail(ctx context.Context, email string) error {
	if err := a.tracker.RecordLoginAttempt(ctx, email, false); err != nil {
		slog.Error("Failed to record login attempt", "email", email, "error", err)
		return err
	}
	if err := a.tracker.CheckLocked(ctx, email); err != nil {
		return err
	}
	return ErrInvalidCredentials
}

func NewAuthenticator(userRepo UserRepository, tracker *lockout.Tracker) *Authenticator {
	return &Authenticator{
		userRepo: userRepo,
		tracker:  tracker,
	}
}
