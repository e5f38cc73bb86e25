package formclient

import "context"

// TokenProvider supplies the current session's access token. The auth
// platform owns session lifecycle; the client only asks for the token when
// building an authenticated request.
type TokenProvider interface {
	// AccessToken returns the current access token, or an error when no
	// session is active.
	AccessToken(ctx context.Context) (string, error)
}

// StaticToken is a TokenProvider for a fixed token, useful in tests and
// scripts.
type StaticToken string

func (t StaticToken) AccessToken(ctx context.Context) (string, error) {
	if t == "" {
		return "", ErrNoActiveSession
	}
	return string(t), nil
}
