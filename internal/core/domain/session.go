package domain

import (
	"context"
	"errors"
	"slices"
	"strconv"
)

// Persisted session keys. All five are written on login and removed together
// on logout.
const (
	KeyToken    = "token"
	KeyRole     = "role"
	KeyName     = "name"
	KeyStreamID = "stream_id"
	KeyUserID   = "user_id"
)

var SessionKeys = []string{KeyToken, KeyRole, KeyName, KeyStreamID, KeyUserID}

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrMissingToken    = errors.New("token missing from login response")
)

// Identity is who the backend says the token holder is. It is display and
// routing data only; the backend re-checks authorization on every call.
type Identity struct {
	Role        string
	DisplayName string
	StreamID    int64
	UserID      int64
}

// Session is the console's view of a logged-in user. It is immutable once
// built; only the session service creates or destroys sessions.
// A nil *Session is a valid anonymous session.
type Session struct {
	id       string
	token    string
	identity Identity
}

func NewSession(id, token string, identity Identity) *Session {
	return &Session{id: id, token: token, identity: identity}
}

// SessionFromValues rebuilds a session from its persisted key/value form.
// Unparseable numeric fields read as zero.
func SessionFromValues(id string, values map[string]string) *Session {
	streamID, _ := strconv.ParseInt(values[KeyStreamID], 10, 64)
	userID, _ := strconv.ParseInt(values[KeyUserID], 10, 64)
	return &Session{
		id:    id,
		token: values[KeyToken],
		identity: Identity{
			Role:        values[KeyRole],
			DisplayName: values[KeyName],
			StreamID:    streamID,
			UserID:      userID,
		},
	}
}

// Values returns the persisted key/value form. Zero ids are stored as "".
func (s *Session) Values() map[string]string {
	return map[string]string{
		KeyToken:    s.Token(),
		KeyRole:     s.Role(),
		KeyName:     s.DisplayName(),
		KeyStreamID: formatID(s.StreamID()),
		KeyUserID:   formatID(s.UserID()),
	}
}

func (s *Session) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.token
}

func (s *Session) Role() string {
	if s == nil {
		return ""
	}
	return s.identity.Role
}

func (s *Session) DisplayName() string {
	if s == nil {
		return ""
	}
	return s.identity.DisplayName
}

func (s *Session) StreamID() int64 {
	if s == nil {
		return 0
	}
	return s.identity.StreamID
}

func (s *Session) UserID() int64 {
	if s == nil {
		return 0
	}
	return s.identity.UserID
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// HasRole reports whether the session role is set and one of roles.
func (s *Session) HasRole(roles ...string) bool {
	role := s.Role()
	return role != "" && slices.Contains(roles, role)
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

type sessionCtxKey struct{}

// ContextWithSession returns a copy of ctx carrying s. Outgoing backend calls
// read their bearer token from it.
func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

// SessionFromContext returns the session in ctx, or nil when anonymous.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionCtxKey{}).(*Session)
	return s
}
