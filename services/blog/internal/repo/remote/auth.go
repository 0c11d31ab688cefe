package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"inkpress/pkg/baas"
	"inkpress/services/blog/internal/entity"
	"inkpress/services/blog/internal/repo"
)

type authRepository struct {
	client *baas.Client
}

func NewAuthRepository(client *baas.Client) repo.AuthRepository {
	return &authRepository{client: client}
}

func (r *authRepository) SignUp(ctx context.Context, email, password, username string) (*entity.AuthResult, error) {
	res, err := r.client.Auth().SignUp(ctx, email, password, map[string]interface{}{"username": username})
	if err != nil {
		if baas.HasCode(err, baas.CodeUserAlreadyExists, baas.CodeEmailExists) {
			return nil, fmt.Errorf("%w: %w", entity.ErrAlreadyRegistered, err)
		}
		return nil, err
	}
	return &entity.AuthResult{User: res.User, Session: res.Session}, nil
}

func (r *authRepository) SignIn(ctx context.Context, email, password string) (*entity.AuthResult, error) {
	res, err := r.client.Auth().SignInWithPassword(ctx, email, password)
	if err != nil {
		if isInvalidCredentials(err) {
			return nil, fmt.Errorf("%w: %w", entity.ErrInvalidCredentials, err)
		}
		return nil, err
	}
	return &entity.AuthResult{User: res.User, Session: res.Session}, nil
}

func (r *authRepository) SignOut(ctx context.Context) error {
	return r.client.Auth().SignOut(ctx)
}

func (r *authRepository) CurrentUser(ctx context.Context) (*entity.Identity, error) {
	user, err := r.client.Auth().GetUser(ctx)
	if err != nil {
		if errors.Is(err, baas.ErrNoSession) || baas.IsStatus(err, http.StatusUnauthorized, http.StatusForbidden) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *authRepository) OnAuthStateChange(listener entity.AuthListener) func() {
	return r.client.Auth().OnAuthStateChange(listener)
}

// isInvalidCredentials keeps other failed grants, such as an unconfirmed
// e-mail, out of the wrong-password bucket.
func isInvalidCredentials(err error) bool {
	if baas.HasCode(err, baas.CodeInvalidCredentials) {
		return true
	}
	var apiErr *baas.APIError
	return baas.HasCode(err, baas.CodeInvalidGrant) &&
		errors.As(err, &apiErr) &&
		strings.EqualFold(apiErr.Message, "Invalid login credentials")
}
