package usecase

import (
	"context"

	"inkpress/pkg/logger"
	"inkpress/services/blog/internal/entity"
	"inkpress/services/blog/internal/repo"
)

type AuthUseCase interface {
	SignUp(ctx context.Context, email, password, username string) (*entity.AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*entity.AuthResult, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (*entity.Identity, error)
	OnAuthStateChange(listener entity.AuthListener) (unsubscribe func())
}

type authUseCase struct {
	authRepo repo.AuthRepository
	logger   *logger.Logger
}

func NewAuthUseCase(authRepo repo.AuthRepository, logger *logger.Logger) AuthUseCase {
	return &authUseCase{
		authRepo: authRepo,
		logger:   logger,
	}
}

func (uc *authUseCase) SignUp(ctx context.Context, email, password, username string) (*entity.AuthResult, error) {
	res, err := uc.authRepo.SignUp(ctx, email, password, username)
	if err != nil {
		uc.logger.Warn("Sign-up failed for %s: %v", email, err)
		return nil, err
	}

	uc.logger.Info("User signed up: %s", res.User.ID)
	return res, nil
}

func (uc *authUseCase) SignIn(ctx context.Context, email, password string) (*entity.AuthResult, error) {
	res, err := uc.authRepo.SignIn(ctx, email, password)
	if err != nil {
		uc.logger.Warn("Sign-in failed for %s: %v", email, err)
		return nil, err
	}
	return res, nil
}

func (uc *authUseCase) SignOut(ctx context.Context) error {
	return uc.authRepo.SignOut(ctx)
}

// CurrentUser never fails the caller: lookup errors are logged and reported
// as "no user".
func (uc *authUseCase) CurrentUser(ctx context.Context) (*entity.Identity, error) {
	user, err := uc.authRepo.CurrentUser(ctx)
	if err != nil {
		uc.logger.Error("Failed to get current user: %v", err)
		return nil, nil
	}
	return user, nil
}

func (uc *authUseCase) OnAuthStateChange(listener entity.AuthListener) func() {
	return uc.authRepo.OnAuthStateChange(listener)
}
