package repositories

import (
	"context"
	"fmt"

	"blogspace/app/models"
	"blogspace/app/storage"
)

// KVCredentialRepository keeps password hashes under the "credentials" key.
type KVCredentialRepository struct {
	c *Collections
}

// NewCredentialRepository creates a new KVCredentialRepository
func NewCredentialRepository(c *Collections) *KVCredentialRepository {
	return &KVCredentialRepository{c: c}
}

// Get returns the credential of a user, or ErrNotFound when the user never
// set a password.
func (r *KVCredentialRepository) Get(ctx context.Context, userID string) (*models.Credential, error) {
	creds, err := readCollection[models.Credential](ctx, r.c, storage.CredentialsKey)
	if err != nil {
		return nil, err
	}
	for i := range creds {
		if creds[i].UserID == userID {
			cred := creds[i]
			return &cred, nil
		}
	}
	return nil, ErrNotFound
}

// Set stores or replaces the credential of a user
func (r *KVCredentialRepository) Set(ctx context.Context, cred *models.Credential) error {
	if err := cred.Validate(); err != nil {
		return fmt.Errorf("invalid credential: %w", err)
	}

	r.c.mutex.Lock()
	defer r.c.mutex.Unlock()

	creds, err := readCollection[models.Credential](ctx, r.c, storage.CredentialsKey)
	if err != nil {
		return err
	}
	for i := range creds {
		if creds[i].UserID == cred.UserID {
			creds[i] = *cred
			return writeCollection(ctx, r.c, storage.CredentialsKey, creds)
		}
	}
	return writeCollection(ctx, r.c, storage.CredentialsKey, append(creds, *cred))
}

// Remove deletes the credential of a user. A user without one is not an error.
func (r *KVCredentialRepository) Remove(ctx context.Context, userID string) error {
	r.c.mutex.Lock()
	defer r.c.mutex.Unlock()

	creds, err := readCollection[models.Credential](ctx, r.c, storage.CredentialsKey)
	if err != nil {
		return err
	}
	for i := range creds {
		if creds[i].UserID == userID {
			return writeCollection(ctx, r.c, storage.CredentialsKey, append(creds[:i], creds[i+1:]...))
		}
	}
	return nil
}
