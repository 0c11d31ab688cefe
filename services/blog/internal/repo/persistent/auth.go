package persistent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inkpress/pkg/baas"
	"inkpress/pkg/jwt"
	"inkpress/services/blog/internal/entity"
	"inkpress/services/blog/internal/model"
	"inkpress/services/blog/internal/repo"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type authRepository struct {
	db       *gorm.DB
	tokens   *jwt.Service
	notifier baas.StateNotifier
}

func NewAuthRepository(db *gorm.DB, tokens *jwt.Service) repo.AuthRepository {
	return &authRepository{db: db, tokens: tokens}
}

func (r *authRepository) SignUp(ctx context.Context, email, password, username string) (*entity.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: email and a password of at least %d characters are required", entity.ErrInvalidInput, minPasswordLength)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.AccountModel{Email: email, PasswordHash: string(hashedPassword)}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&model.AccountModel{}).Where("email = ?", email).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return entity.ErrAlreadyRegistered
		}

		if err := tx.Create(account).Error; err != nil {
			return err
		}
		return tx.Create(&model.UserModel{ID: account.ID, Email: email, Username: username}).Error
	})
	if err != nil {
		if errors.Is(err, entity.ErrAlreadyRegistered) {
			return nil, err
		}
		// A concurrent sign-up with the same e-mail won the race
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %w", entity.ErrAlreadyRegistered, err)
		}
		return nil, fmt.Errorf("sign up: %w", err)
	}

	return r.startSession(account, username)
}

func (r *authRepository) SignIn(ctx context.Context, email, password string) (*entity.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var account model.AccountModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("sign in: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	var profile model.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", account.ID).First(&profile).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	return r.startSession(&account, profile.Username)
}

// SignOut ends the session for listeners. Issued tokens stay valid until
// they expire.
func (r *authRepository) SignOut(ctx context.Context) error {
	r.notifier.Notify(entity.EventSignedOut, nil)
	return nil
}

func (r *authRepository) CurrentUser(ctx context.Context) (*entity.Identity, error) {
	token, ok := baas.AccessTokenFromContext(ctx)
	if !ok {
		return nil, nil
	}

	claims, err := r.tokens.ValidateUserToken(token)
	if err != nil {
		return nil, nil
	}

	return &entity.Identity{
		ID:           claims.UserID(),
		Email:        claims.Email,
		Role:         claims.Role,
		UserMetadata: claims.UserMetadata,
	}, nil
}

func (r *authRepository) OnAuthStateChange(listener entity.AuthListener) func() {
	return r.notifier.Subscribe(listener)
}

func (r *authRepository) startSession(account *model.AccountModel, username string) (*entity.AuthResult, error) {
	metadata := map[string]interface{}{"username": username}

	token, err := r.tokens.GenerateToken(account.ID, account.Email, metadata)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	user := &entity.Identity{
		ID:           account.ID,
		Email:        account.Email,
		Role:         jwt.RoleAuthenticated,
		UserMetadata: metadata,
		CreatedAt:    account.CreatedAt,
	}
	ttl := r.tokens.TTL()
	session := &entity.Session{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(ttl.Seconds()),
		ExpiresAt:   time.Now().Add(ttl).Unix(),
		User:        user,
	}

	r.notifier.Notify(entity.EventSignedIn, session)
	return &entity.AuthResult{User: user, Session: session}, nil
}
