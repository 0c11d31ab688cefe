package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"inkpress/pkg/baas"
	"inkpress/pkg/config"
	"inkpress/pkg/database"
	"inkpress/pkg/logger"
	app "inkpress/services/blog/internal/app"
	"inkpress/services/blog/internal/entity"
	"inkpress/services/blog/internal/usecase"
)

type seedUser struct {
	email    string
	username string
	password string
	bio      string
}

var testUsers = []seedUser{
	{"alice@test.com", "alice", "password123", "Writes about distributed systems."},
	{"bob@test.com", "bob", "password123", "Coffee, Go and long walks."},
	{"charlie@test.com", "charlie", "password123", ""},
}

var testPosts = []struct {
	title   string
	content string
	status  entity.PostStatus
}{
	{"Hello, Inkpress", "First post on the new blog.", entity.StatusPublished},
	{"Notes on pagination", "Offsets are simple until the table grows.", entity.StatusPublished},
	{"Unfinished thoughts", "This one is still a draft.", entity.StatusDraft},
}

func main() {
	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 2*time.Minute, "Overall seeding timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	defer log.Sync()

	var infra app.Infra
	if cfg.Backend == config.BackendPostgres {
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Error("Failed to connect to database: %v", err)
			panic(err)
		}
		defer database.Close(db)
		infra.DB = db
	}

	repos, err := app.NewRepositories(cfg, log, infra.DB)
	if err != nil {
		log.Error("Failed to create repositories: %v", err)
		panic(err)
	}
	uc := app.NewUseCases(repos, infra, log)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := seed(ctx, uc, log); err != nil {
		log.Error("Failed to seed: %v", err)
		panic(err)
	}

	log.Info("Blog seeded successfully!")
}

func seed(ctx context.Context, uc *usecase.UseCases, log *logger.Logger) error {
	sessions := make([]context.Context, 0, len(testUsers))
	for _, u := range testUsers {
		userCtx, err := signIn(ctx, uc, u)
		if err != nil {
			return fmt.Errorf("user %s: %w", u.email, err)
		}
		if userCtx == nil {
			log.Warn("User %s needs e-mail confirmation, skipping", u.email)
			continue
		}
		sessions = append(sessions, userCtx)

		if u.bio != "" {
			me, err := uc.Auth.CurrentUser(userCtx)
			if err != nil || me == nil {
				return fmt.Errorf("user %s: no current user after sign-in", u.email)
			}
			bio := u.bio
			if _, err := uc.Users.UpdateProfile(userCtx, me.ID, entity.ProfileInput{Bio: &bio}); err != nil {
				return fmt.Errorf("profile %s: %w", u.email, err)
			}
		}
	}
	if len(sessions) == 0 {
		return errors.New("no user could sign in")
	}

	var published []*entity.Post
	for i, p := range testPosts {
		author := sessions[i%len(sessions)]
		title, content, status := p.title, p.content, p.status
		post, err := uc.Posts.Create(author, entity.PostInput{
			Title:   &title,
			Content: &content,
			Status:  &status,
		})
		if err != nil {
			return fmt.Errorf("post %q: %w", p.title, err)
		}
		log.Info("Created post %s (%s)", post.ID, post.Status)
		if post.Status == entity.StatusPublished {
			published = append(published, post)
		}
	}

	for i, post := range published {
		commenter := sessions[(i+1)%len(sessions)]
		if _, err := uc.Comments.Create(commenter, entity.CommentInput{
			PostID:  post.ID,
			Content: "Nice write-up, thanks!",
		}); err != nil {
			return fmt.Errorf("comment on %s: %w", post.ID, err)
		}
	}

	log.Info("Seeded %d users, %d posts, %d comments", len(sessions), len(testPosts), len(published))
	return nil
}

// signIn registers the user, falling back to sign-in when the account
// exists. It returns nil when no session was issued.
func signIn(ctx context.Context, uc *usecase.UseCases, u seedUser) (context.Context, error) {
	res, err := uc.Auth.SignUp(ctx, u.email, u.password, u.username)
	if errors.Is(err, entity.ErrAlreadyRegistered) {
		res, err = uc.Auth.SignIn(ctx, u.email, u.password)
	}
	if err != nil {
		return nil, err
	}
	if res.Session == nil {
		return nil, nil
	}
	return baas.ContextWithAccessToken(ctx, res.Session.AccessToken), nil
}
