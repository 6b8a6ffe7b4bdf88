package repositories

import (
	"context"
	"fmt"

	"blogspace/app/models"
	"blogspace/app/storage"
)

// KVUserRepository implements UserRepository over the "users" key.
type KVUserRepository struct {
	c *Collections
}

// NewUserRepository creates a new KVUserRepository
func NewUserRepository(c *Collections) *KVUserRepository {
	return &KVUserRepository{c: c}
}

// List returns every registered user in registration order
func (r *KVUserRepository) List(ctx context.Context) ([]models.User, error) {
	return readCollection[models.User](ctx, r.c, storage.UsersKey)
}

// FindByID retrieves a user by ID
func (r *KVUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.find(ctx, func(u *models.User) bool { return u.ID == id })
}

// FindByEmail retrieves a user by email, ignoring case and surrounding space
func (r *KVUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	return r.find(ctx, func(u *models.User) bool { return models.NormalizeEmail(u.Email) == email })
}

// Upsert replaces the user with the same ID or appends a new one
func (r *KVUserRepository) Upsert(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}

	r.c.mutex.Lock()
	defer r.c.mutex.Unlock()

	users, err := readCollection[models.User](ctx, r.c, storage.UsersKey)
	if err != nil {
		return err
	}

	replaced := false
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = *user
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, *user)
	}
	return writeCollection(ctx, r.c, storage.UsersKey, users)
}

func (r *KVUserRepository) find(ctx context.Context, match func(*models.User) bool) (*models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if match(&users[i]) {
			user := users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}
