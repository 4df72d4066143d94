package logic

import (
	"context"
	"fmt"
	"net/mail"

	"go.uber.org/zap"

	"github.com/encurtador/shortener/internal/apperrors"
	"github.com/encurtador/shortener/internal/auth"
	"github.com/encurtador/shortener/internal/hash"
	"github.com/encurtador/shortener/internal/models"
	"github.com/encurtador/shortener/internal/store"
)

const minPasswordLength = 6

type UserService struct {
	store  store.Store
	hasher *hash.Hasher
	secret string
	logger *zap.SugaredLogger
}

func NewUserService(store store.Store, hasher *hash.Hasher, secret string, logger *zap.SugaredLogger) *UserService {
	return &UserService{
		store:  store,
		hasher: hasher,
		secret: secret,
		logger: logger,
	}
}

func validateRegistration(name string, email string, password string) []apperrors.FieldError {
	var fields []apperrors.FieldError
	if name == "" {
		fields = append(fields, apperrors.FieldError{Field: "name", Message: "name must be at least 1 character long"})
	}
	if _, err := mail.ParseAddress(email); err != nil {
		fields = append(fields, apperrors.FieldError{Field: "email", Message: "invalid email address"})
	}
	if len(password) < minPasswordLength {
		fields = append(fields, apperrors.FieldError{Field: "password", Message: fmt.Sprintf("password must be at least %d characters long", minPasswordLength)})
	}
	return fields
}

// Register creates a user and signs a token over the new id. Persistence
// failures keep their translated kind (a duplicate email reads as Duplicate
// on "email"); hashing and signing failures collapse into InvalidInput.
func (s *UserService) Register(ctx context.Context, name string, email string, password string) (models.PublicUser, string, error) {
	if fields := validateRegistration(name, email, password); fields != nil {
		return models.PublicUser{}, "", apperrors.NewInvalidInput("there are validation errors in the submitted data", fields...)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Errorf("error hashing password: %v", err)
		return models.PublicUser{}, "", apperrors.NewInvalidInput("invalid user data")
	}

	user := models.NewUser(name, email, digest)
	if err := s.store.SaveUser(ctx, user); err != nil {
		err = fmt.Errorf("error saving user: %w", err)
		s.logger.Error(err)
		return models.PublicUser{}, "", apperrors.NewOperationFailed("error registering user", err)
	}

	token, err := auth.BuildJWTString(s.secret, user.ID)
	if err != nil {
		s.logger.Errorf("error signing token: %v", err)
		return models.PublicUser{}, "", apperrors.NewInvalidInput("invalid user data")
	}

	return user.PublicView(), token, nil
}

// Authenticate verifies credentials and signs a token over the user id. A
// password mismatch is reported as the same InvalidInput-class rejection as
// bad input, never as a distinct wrong-password kind.
func (s *UserService) Authenticate(ctx context.Context, email string, password string) (models.PublicUser, string, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		s.logger.Debugf("error loading user %q: %v", email, err)
		return models.PublicUser{}, "", apperrors.NewOperationFailed("error authenticating user", err)
	}

	if !s.hasher.Compare(password, user.PasswordHash) {
		return models.PublicUser{}, "", apperrors.NewInvalidInput("invalid credentials")
	}

	token, err := auth.BuildJWTString(s.secret, user.ID)
	if err != nil {
		s.logger.Errorf("error signing token: %v", err)
		return models.PublicUser{}, "", apperrors.NewInvalidInput("invalid credentials")
	}

	return user.PublicView(), token, nil
}
