package users

import (
	"context"
	"sync"

	"github.com/go-sql-driver/mysql"
	"github.com/khanghh/vbs/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	mu   sync.Mutex
	rows map[uint]*model.User
	next uint
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{rows: make(map[uint]*model.User), next: 100}
}

func (r *fakeUserRepository) add(email, password string, role model.Role) *model.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	user := &model.User{Email: email, FullName: "Test User", Password: string(hash), Role: role}
	if err := r.Create(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}

func (r *fakeUserRepository) WithTx(tx *gorm.DB) UserRepository { return r }

func (r *fakeUserRepository) First(ctx context.Context, id uint) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepository) FirstByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.rows {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) List(ctx context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.User, 0, len(r.rows))
	for _, user := range r.rows {
		out = append(out, user)
	}
	return out, nil
}

func (r *fakeUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.Email == user.Email {
			return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
		}
	}
	r.next++
	user.ID = r.next
	r.rows[user.ID] = user
	return nil
}

func (r *fakeUserRepository) Updates(ctx context.Context, id uint, columns map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.rows[id]
	if !ok {
		return nil
	}
	if role, ok := columns["role"].(model.Role); ok {
		user.Role = role
	}
	if disabled, ok := columns["disabled"].(bool); ok {
		user.Disabled = disabled
	}
	return nil
}
