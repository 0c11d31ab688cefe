package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"inkpress/pkg/logger"
	"inkpress/services/blog/internal/entity"
	"inkpress/services/blog/internal/repo"

	"github.com/google/uuid"
)

var ErrStorageUnavailable = errors.New("avatar storage is not configured")

type UserUseCase interface {
	GetProfile(ctx context.Context, id string) (*entity.User, error)
	UpdateProfile(ctx context.Context, id string, in entity.ProfileInput) (*entity.User, error)
	UploadAvatar(ctx context.Context, id string, file io.Reader, filename, contentType string) (*entity.User, error)
}

type userUseCase struct {
	userRepo repo.UserRepository
	authRepo repo.AuthRepository
	storage  ObjectStorage
	logger   *logger.Logger
}

func NewUserUseCase(
	userRepo repo.UserRepository,
	authRepo repo.AuthRepository,
	storage ObjectStorage,
	logger *logger.Logger,
) UserUseCase {
	return &userUseCase{
		userRepo: userRepo,
		authRepo: authRepo,
		storage:  storage,
		logger:   logger,
	}
}

func (uc *userUseCase) GetProfile(ctx context.Context, id string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// UpdateProfile changes the caller's own profile; any other id updates
// nothing and reports ErrNotFound.
func (uc *userUseCase) UpdateProfile(ctx context.Context, id string, in entity.ProfileInput) (*entity.User, error) {
	me, err := requireUser(ctx, uc.authRepo)
	if err != nil {
		return nil, err
	}
	return uc.userRepo.Update(ctx, id, me.ID, in)
}

// UploadAvatar stores the image, points the profile at it and removes the
// avatar it replaces.
func (uc *userUseCase) UploadAvatar(ctx context.Context, id string, file io.Reader, filename, contentType string) (*entity.User, error) {
	me, err := requireUser(ctx, uc.authRepo)
	if err != nil {
		return nil, err
	}
	if uc.storage == nil {
		return nil, ErrStorageUnavailable
	}

	current, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if contentType == "" {
		contentType = "image/jpeg"
	}
	fileKey := fmt.Sprintf("avatars/%s/%s%s", id, uuid.New().String(), getFileExtension(filename))

	avatarURL, err := uc.storage.Upload(ctx, fileKey, file, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload avatar for %s: %v", id, err)
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	user, err := uc.userRepo.Update(ctx, id, me.ID, entity.ProfileInput{AvatarURL: &avatarURL})
	if err != nil {
		uc.removeAvatar(ctx, fileKey)
		return nil, err
	}

	if oldKey, ok := uc.storage.KeyFromURL(current.AvatarURL); ok && strings.HasPrefix(oldKey, "avatars/"+id+"/") {
		uc.removeAvatar(ctx, oldKey)
	}
	return user, nil
}

func (uc *userUseCase) removeAvatar(ctx context.Context, key string) {
	if err := uc.storage.Delete(ctx, key); err != nil {
		uc.logger.Warn("Failed to delete avatar %s: %v", key, err)
	}
}

func getFileExtension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
