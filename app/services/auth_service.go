package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"blogspace/app/models"
	"blogspace/app/repositories"
	"blogspace/app/store"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is the payload for creating an account. Password is optional;
// accounts without one log in by email alone.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=6,max=72"`
}

// LoginInput is the payload for starting a session.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password"`
}

// AuthService registers users and manages the session slice of the store.
type AuthService struct {
	users       repositories.UserRepository
	credentials repositories.CredentialRepository
	store       *store.Store
	logger      *zap.Logger
	cost        int
	mutex       sync.Mutex
}

// NewAuthService creates a new AuthService
func NewAuthService(users repositories.UserRepository, credentials repositories.CredentialRepository, st *store.Store, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:       users,
		credentials: credentials,
		store:       st,
		logger:      logger,
		cost:        bcrypt.DefaultCost,
	}
}

// WithHashCost sets the bcrypt cost used for new credentials.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.cost = cost
	return s
}

// Register stores a new user and, when a password is given, its credential.
// It does not start a session.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := models.ValidateStruct(in); err != nil {
		return nil, invalid(err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	user := &models.User{Username: in.Username, Email: in.Email}
	user.BeforeCreate()
	if err := user.Validate(); err != nil {
		return nil, invalid(err)
	}

	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		if err := s.credentials.Set(ctx, &models.Credential{UserID: user.ID, PasswordHash: string(hash)}); err != nil {
			return nil, err
		}
	}

	// The credential goes first so a stored user is never left without its
	// password. On failure it is taken back out.
	if err := s.users.Upsert(ctx, user); err != nil {
		if in.Password != "" {
			if rerr := s.credentials.Remove(ctx, user.ID); rerr != nil {
				s.logger.Error("failed to remove credential of unregistered user",
					zap.String("user_id", user.ID), zap.Error(rerr))
			}
		}
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login looks the user up by email and starts a session. A stored credential,
// if any, must match the given password.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	if err := models.ValidateStruct(in); err != nil {
		return nil, invalid(err)
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	cred, err := s.credentials.Get(ctx, user.ID)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(in.Password)) != nil {
			return nil, ErrInvalidCredentials
		}
	}

	s.store.Dispatch(store.Login{User: *user})
	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return user, nil
}

// Logout ends the session.
func (s *AuthService) Logout() {
	s.store.Dispatch(store.Logout{})
}

// Current returns the logged in user.
func (s *AuthService) Current() (*models.User, error) {
	return currentUser(s.store)
}

func currentUser(st *store.Store) (*models.User, error) {
	auth := st.Auth()
	if !auth.IsAuthenticated || auth.User == nil {
		return nil, ErrNotAuthenticated
	}
	return auth.User, nil
}
