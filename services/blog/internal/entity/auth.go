package entity

import "inkpress/pkg/baas"

// Auth types are the BaaS auth service's own; the self-hosted backend issues
// sessions in the same format.
type (
	Identity     = baas.User
	Session      = baas.Session
	AuthEvent    = baas.AuthEvent
	AuthListener = baas.AuthListener
)

const (
	EventSignedIn  = baas.EventSignedIn
	EventSignedOut = baas.EventSignedOut
)

// AuthResult is returned by sign-up and sign-in. Session is nil when the
// account still needs e-mail confirmation.
type AuthResult struct {
	User    *Identity `json:"user"`
	Session *Session  `json:"session"`
}
