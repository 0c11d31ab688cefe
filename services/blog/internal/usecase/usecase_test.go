package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"inkpress/pkg/logger"
	"inkpress/services/blog/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func signedInAs(id string) *MockAuthRepository {
	authRepo := new(MockAuthRepository)
	authRepo.On("CurrentUser", mock.Anything).Return(&entity.Identity{ID: id, Email: id + "@example.com"}, nil)
	return authRepo
}

func signedOut() *MockAuthRepository {
	authRepo := new(MockAuthRepository)
	authRepo.On("CurrentUser", mock.Anything).Return(nil, nil)
	return authRepo
}

func TestAuthUseCase_CurrentUserSwallowsErrors(t *testing.T) {
	authRepo := new(MockAuthRepository)
	authRepo.On("CurrentUser", mock.Anything).Return(nil, errors.New("network down"))
	uc := NewAuthUseCase(authRepo, logger.NewNop())

	user, err := uc.CurrentUser(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestAuthUseCase_SignUpThenSignIn(t *testing.T) {
	ctx := context.Background()
	identity := &entity.Identity{ID: "user-1", Email: "ada@example.com"}
	authRepo := new(MockAuthRepository)
	authRepo.On("SignUp", ctx, "ada@example.com", "secret123", "ada").Return(&entity.AuthResult{User: identity}, nil)
	authRepo.On("SignIn", ctx, "ada@example.com", "secret123").Return(&entity.AuthResult{User: identity, Session: &entity.Session{AccessToken: "t"}}, nil)
	uc := NewAuthUseCase(authRepo, logger.NewNop())

	_, err := uc.SignUp(ctx, "ada@example.com", "secret123", "ada")
	require.NoError(t, err)
	res, err := uc.SignIn(ctx, "ada@example.com", "secret123")
	require.NoError(t, err)
	assert.NotNil(t, res.User)
	authRepo.AssertExpectations(t)
}

func TestAuthUseCase_SignInError(t *testing.T) {
	authRepo := new(MockAuthRepository)
	authRepo.On("SignIn", mock.Anything, "ada@example.com", "nope").Return(nil, entity.ErrInvalidCredentials)
	uc := NewAuthUseCase(authRepo, logger.NewNop())

	res, err := uc.SignIn(context.Background(), "ada@example.com", "nope")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestWrites_RequireSignIn(t *testing.T) {
	ctx := context.Background()
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	userRepo := new(MockUserRepository)
	storage := new(MockStorage)
	authRepo := signedOut()
	log := logger.NewNop()

	posts := NewPostUseCase(postRepo, authRepo, nil, log)
	comments := NewCommentUseCase(commentRepo, authRepo, nil, log)
	users := NewUserUseCase(userRepo, authRepo, storage, log)

	post, err := posts.Create(ctx, entity.PostInput{Title: strPtr("x")})
	assert.Nil(t, post)
	assert.ErrorIs(t, err, entity.ErrNotSignedIn)

	post, err = posts.Update(ctx, "post-1", entity.PostInput{Title: strPtr("x")})
	assert.Nil(t, post)
	assert.ErrorIs(t, err, entity.ErrNotSignedIn)

	assert.ErrorIs(t, posts.Delete(ctx, "post-1"), entity.ErrNotSignedIn)

	comment, err := comments.Create(ctx, entity.CommentInput{PostID: "post-1", Content: "hi"})
	assert.Nil(t, comment)
	assert.ErrorIs(t, err, entity.ErrNotSignedIn)

	assert.ErrorIs(t, comments.Delete(ctx, "comment-1"), entity.ErrNotSignedIn)

	user, err := users.UploadAvatar(ctx, "user-1", strings.NewReader("png"), "a.png", "image/png")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, entity.ErrNotSignedIn)

	user, err = users.UpdateProfile(ctx, "user-1", entity.ProfileInput{Bio: strPtr("hijacked")})
	assert.Nil(t, user)
	assert.ErrorIs(t, err, entity.ErrNotSignedIn)
	assert.EqualError(t, entity.ErrNotSignedIn, "must sign in")

	postRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	postRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	postRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	commentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWrites_CurrentUserErrorIsReturned(t *testing.T) {
	authRepo := new(MockAuthRepository)
	authRepo.On("CurrentUser", mock.Anything).Return(nil, errors.New("backend down"))
	uc := NewPostUseCase(new(MockPostRepository), authRepo, nil, logger.NewNop())

	_, err := uc.Create(context.Background(), entity.PostInput{})
	assert.EqualError(t, err, "backend down")
}

func TestPostUseCase_ListPublished(t *testing.T) {
	ctx := context.Background()
	postRepo := new(MockPostRepository)
	uc := NewPostUseCase(postRepo, signedOut(), nil, logger.NewNop())

	posts := []*entity.Post{{ID: "p1"}, {ID: "p2"}}
	postRepo.On("ListByStatus", ctx, entity.StatusPublished, entity.Page{Number: 1, Limit: 10}).Return(posts, int64(12), nil)

	page, err := uc.ListPublished(ctx, entity.Page{})
	require.NoError(t, err)
	assert.Equal(t, posts, page.Posts)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	postRepo.AssertExpectations(t)
}

func TestPostUseCase_ListError(t *testing.T) {
	ctx := context.Background()
	postRepo := new(MockPostRepository)
	uc := NewPostUseCase(postRepo, signedOut(), nil, logger.NewNop())

	postRepo.On("ListByAuthor", ctx, "user-1", entity.Page{Number: 2, Limit: 5}).Return(nil, int64(0), errors.New("boom"))

	page, err := uc.ListByAuthor(ctx, "user-1", entity.NewPage(2, 5))
	assert.Nil(t, page)
	assert.Error(t, err)
}

func TestPostUseCase_CreateInjectsAuthorAndPublishes(t *testing.T) {
	ctx := context.Background()
	postRepo := new(MockPostRepository)
	publisher := new(MockPublisher)
	uc := NewPostUseCase(postRepo, signedInAs("user-1"), publisher, logger.NewNop())

	published := entity.StatusPublished
	in := entity.PostInput{Title: strPtr("Hello"), Status: &published}
	created := &entity.Post{ID: "post-1", AuthorID: "user-1", Title: "Hello", Status: entity.StatusPublished}
	postRepo.On("Create", ctx, "user-1", in).Return(created, nil)
	publisher.On("Publish", ctx, entity.EventPostCreated, mock.AnythingOfType("entity.PostEvent")).Return(nil)
	publisher.On("Publish", ctx, entity.EventPostPublished, mock.AnythingOfType("entity.PostEvent")).Return(errors.New("broker down"))

	post, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, created, post)
	postRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestPostUseCase_UpdateAndDeleteFilterByCaller(t *testing.T) {
	ctx := context.Background()
	postRepo := new(MockPostRepository)
	publisher := new(MockPublisher)
	uc := NewPostUseCase(postRepo, signedInAs("user-1"), publisher, logger.NewNop())

	in := entity.PostInput{Title: strPtr("Renamed")}
	postRepo.On("Update", ctx, "post-1", "user-1", in).Return(&entity.Post{ID: "post-1", Title: "Renamed"}, nil)
	postRepo.On("Delete", ctx, "post-2", "user-1").Return(nil)

	post, err := uc.Update(ctx, "post-1", in)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", post.Title)
	assert.NoError(t, uc.Delete(ctx, "post-2"))

	postRepo.AssertExpectations(t)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestPostUseCase_UpdateNotFound(t *testing.T) {
	ctx := context.Background()
	postRepo := new(MockPostRepository)
	uc := NewPostUseCase(postRepo, signedInAs("user-1"), nil, logger.NewNop())

	postRepo.On("Update", ctx, "post-9", "user-1", entity.PostInput{}).Return(nil, entity.ErrNotFound)

	post, err := uc.Update(ctx, "post-9", entity.PostInput{})
	assert.Nil(t, post)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCommentUseCase(t *testing.T) {
	ctx := context.Background()
	commentRepo := new(MockCommentRepository)
	publisher := new(MockPublisher)
	uc := NewCommentUseCase(commentRepo, signedInAs("user-2"), publisher, logger.NewNop())

	in := entity.CommentInput{PostID: "post-1", Content: "nice"}
	commentRepo.On("Create", ctx, "user-2", in).Return(&entity.Comment{ID: "c1", PostID: "post-1", UserID: "user-2"}, nil)
	commentRepo.On("ListByPost", ctx, "post-empty").Return(nil, nil)
	commentRepo.On("Delete", ctx, "c1", "user-2").Return(nil)
	publisher.On("Publish", ctx, entity.EventCommentCreated, mock.MatchedBy(func(e entity.CommentEvent) bool {
		return e.CommentID == "c1" && e.PostID == "post-1"
	})).Return(nil)

	comment, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "user-2", comment.UserID)

	comments, err := uc.ListByPost(ctx, "post-empty")
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)

	assert.NoError(t, uc.Delete(ctx, "c1"))
	commentRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUserUseCase_UploadAvatar(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	storage := new(MockStorage)
	uc := NewUserUseCase(userRepo, signedInAs("user-1"), storage, logger.NewNop())

	oldURL := "https://cdn.example/avatars/user-1/old.png"
	newURL := "https://cdn.example/avatars/user-1/a.png"
	body := strings.NewReader("png-bytes")
	userRepo.On("GetByID", ctx, "user-1").Return(&entity.User{ID: "user-1", AvatarURL: oldURL}, nil)
	storage.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "avatars/user-1/") && strings.HasSuffix(key, ".png")
	}), body, "image/png").Return(newURL, nil)
	userRepo.On("Update", ctx, "user-1", "user-1", mock.MatchedBy(func(in entity.ProfileInput) bool {
		return in.AvatarURL != nil && *in.AvatarURL == newURL
	})).Return(&entity.User{ID: "user-1", AvatarURL: newURL}, nil)
	storage.On("KeyFromURL", oldURL).Return("avatars/user-1/old.png", true)
	storage.On("Delete", ctx, "avatars/user-1/old.png").Return(nil)

	user, err := uc.UploadAvatar(ctx, "user-1", body, "Me.PNG", "image/png")
	require.NoError(t, err)
	assert.Equal(t, newURL, user.AvatarURL)
	storage.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestUserUseCase_UploadAvatarKeepsForeignAvatar(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	storage := new(MockStorage)
	uc := NewUserUseCase(userRepo, signedInAs("user-1"), storage, logger.NewNop())

	userRepo.On("GetByID", ctx, "user-1").Return(&entity.User{ID: "user-1", AvatarURL: "https://gravatar.example/x"}, nil)
	storage.On("Upload", ctx, mock.Anything, mock.Anything, "image/jpeg").Return("https://cdn.example/avatars/user-1/b.jpg", nil)
	userRepo.On("Update", ctx, "user-1", "user-1", mock.Anything).Return(&entity.User{ID: "user-1"}, nil)
	storage.On("KeyFromURL", "https://gravatar.example/x").Return("", false)

	_, err := uc.UploadAvatar(ctx, "user-1", strings.NewReader("jpg"), "b.jpg", "")
	require.NoError(t, err)
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUserUseCase_UploadAvatarForSomeoneElse(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	storage := new(MockStorage)
	uc := NewUserUseCase(userRepo, signedInAs("user-1"), storage, logger.NewNop())

	userRepo.On("GetByID", ctx, "user-2").Return(&entity.User{ID: "user-2"}, nil)
	storage.On("Upload", ctx, mock.Anything, mock.Anything, "image/png").Return("https://cdn.example/avatars/user-2/c.png", nil)
	userRepo.On("Update", ctx, "user-2", "user-1", mock.Anything).Return(nil, entity.ErrNotFound)
	storage.On("Delete", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "avatars/user-2/")
	})).Return(nil)

	user, err := uc.UploadAvatar(ctx, "user-2", strings.NewReader("png"), "c.png", "image/png")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	storage.AssertExpectations(t)
}

func TestUserUseCase_UploadAvatarWithoutStorage(t *testing.T) {
	uc := NewUserUseCase(new(MockUserRepository), signedInAs("user-1"), nil, logger.NewNop())

	_, err := uc.UploadAvatar(context.Background(), "user-1", strings.NewReader("x"), "a.png", "")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestUserUseCase_UpdateProfileFiltersByCaller(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	uc := NewUserUseCase(userRepo, signedInAs("user-1"), nil, logger.NewNop())

	in := entity.ProfileInput{Bio: strPtr("hello")}
	userRepo.On("Update", ctx, "user-1", "user-1", in).Return(&entity.User{ID: "user-1", Bio: "hello"}, nil)
	userRepo.On("Update", ctx, "user-2", "user-1", in).Return(nil, entity.ErrNotFound)
	userRepo.On("GetByID", ctx, "missing").Return(nil, entity.ErrNotFound)

	user, err := uc.UpdateProfile(ctx, "user-1", in)
	require.NoError(t, err)
	assert.Equal(t, "hello", user.Bio)

	user, err = uc.UpdateProfile(ctx, "user-2", in)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	_, err = uc.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
