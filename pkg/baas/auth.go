package baas

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// User is an identity as the auth service reports it.
type User struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	Role         string                 `json:"role,omitempty"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// Username returns the username stored in the user's metadata at sign-up.
func (u *User) Username() string {
	if u == nil {
		return ""
	}
	s, _ := u.UserMetadata["username"].(string)
	return s
}

type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// AuthResponse is what sign-up and sign-in return. Session is nil when the
// service requires e-mail confirmation before the first sign-in.
type AuthResponse struct {
	User    *User
	Session *Session
}

type AuthClient struct {
	client *Client

	mu       sync.RWMutex
	session  *Session
	notifier StateNotifier
}

type signUpRequest struct {
	Email    string                 `json:"email"`
	Password string                 `json:"password"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// SignUp registers a new identity. metadata ends up in user_metadata.
func (a *AuthClient) SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*AuthResponse, error) {
	resp, err := a.client.do(ctx, request{
		method: http.MethodPost,
		path:   authPath + "/signup",
		body:   signUpRequest{Email: email, Password: password, Data: metadata},
	})
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	var raw json.RawMessage
	if err := decodeJSON(resp, &raw); err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	// With auto-confirm the service answers with a session, otherwise with the
	// bare user.
	var session Session
	if err := json.Unmarshal(raw, &session); err == nil && session.AccessToken != "" {
		a.setSession(&session, EventSignedIn)
		return &AuthResponse{User: session.User, Session: &session}, nil
	}

	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("sign up: failed to decode user: %w", err)
	}
	return &AuthResponse{User: &user}, nil
}

// SignInWithPassword exchanges e-mail and password for a session.
func (a *AuthClient) SignInWithPassword(ctx context.Context, email, password string) (*AuthResponse, error) {
	resp, err := a.client.do(ctx, request{
		method: http.MethodPost,
		path:   authPath + "/token",
		query:  url.Values{"grant_type": {"password"}},
		body:   map[string]string{"email": email, "password": password},
	})
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	var session Session
	if err := decodeJSON(resp, &session); err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if session.AccessToken == "" {
		return nil, fmt.Errorf("sign in: response carried no access token")
	}

	a.setSession(&session, EventSignedIn)
	return &AuthResponse{User: session.User, Session: &session}, nil
}

// SignOut revokes the caller's session. Signing out without a session, or with
// one the service no longer knows, succeeds.
func (a *AuthClient) SignOut(ctx context.Context) error {
	if a.client.userToken(ctx) != "" {
		resp, err := a.client.do(ctx, request{
			method: http.MethodPost,
			path:   authPath + "/logout",
		})
		if err != nil && !IsStatus(err, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound) {
			return fmt.Errorf("sign out: %w", err)
		}
		if err == nil {
			_ = decodeJSON(resp, nil)
		}
	}

	a.mu.Lock()
	a.session = nil
	a.mu.Unlock()

	a.notifier.Notify(EventSignedOut, nil)
	return nil
}

// GetUser asks the service who the caller is.
func (a *AuthClient) GetUser(ctx context.Context) (*User, error) {
	if a.client.userToken(ctx) == "" {
		return nil, ErrNoSession
	}

	resp, err := a.client.do(ctx, request{
		method: http.MethodGet,
		path:   authPath + "/user",
	})
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	var user User
	if err := decodeJSON(resp, &user); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// Session returns a copy of the stored session, or nil.
func (a *AuthClient) Session() *Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == nil {
		return nil
	}
	cp := *a.session
	return &cp
}

// SetSession restores a previously obtained session.
func (a *AuthClient) SetSession(session *Session) {
	if session == nil {
		return
	}
	a.setSession(session, EventSignedIn)
}

// OnAuthStateChange registers listener for sign-in and sign-out events. The
// returned function removes it.
func (a *AuthClient) OnAuthStateChange(listener AuthListener) (unsubscribe func()) {
	return a.notifier.Subscribe(listener)
}

func (a *AuthClient) setSession(session *Session, event AuthEvent) {
	if session.ExpiresAt == 0 && session.ExpiresIn > 0 {
		session.ExpiresAt = time.Now().Unix() + session.ExpiresIn
	}
	if a.client.persistSession {
		cp := *session
		a.mu.Lock()
		a.session = &cp
		a.mu.Unlock()
	}
	a.notifier.Notify(event, session)
}
