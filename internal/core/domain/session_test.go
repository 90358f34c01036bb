package domain

import (
	"context"
	"testing"
)

func TestSession_ValuesRoundTrip(t *testing.T) {
	s := NewSession("sid", "tok", Identity{Role: RoleTeacher, DisplayName: "Salma", StreamID: 2, UserID: 8})

	back := SessionFromValues("sid", s.Values())
	if back.Token() != "tok" || back.Role() != RoleTeacher || back.DisplayName() != "Salma" ||
		back.StreamID() != 2 || back.UserID() != 8 {
		t.Fatalf("session did not survive its persisted form: %+v", back.Values())
	}
}

func TestSession_ZeroIDsPersistEmpty(t *testing.T) {
	v := NewSession("sid", "tok", Identity{Role: RoleAdmin}).Values()
	if v[KeyStreamID] != "" || v[KeyUserID] != "" {
		t.Fatalf("zero ids must be stored empty, got %v", v)
	}
	if len(v) != len(SessionKeys) {
		t.Fatalf("expected %d keys, got %d", len(SessionKeys), len(v))
	}
}

func TestSessionFromValues_BadNumbers(t *testing.T) {
	s := SessionFromValues("sid", map[string]string{KeyToken: "t", KeyStreamID: "abc", KeyUserID: ""})
	if s.StreamID() != 0 || s.UserID() != 0 {
		t.Fatalf("unparseable ids must read as zero")
	}
}

func TestSession_NilIsAnonymous(t *testing.T) {
	var s *Session
	if s.Authenticated() || s.HasRole(RoleAdmin) || s.Role() != "" || s.Token() != "" {
		t.Fatal("nil session must behave as anonymous")
	}
	if SessionFromContext(context.Background()) != nil {
		t.Fatal("empty context must carry no session")
	}
}

func TestSession_HasRole(t *testing.T) {
	tests := []struct {
		role  string
		allow []string
		want  bool
	}{
		{role: RoleAdmin, allow: []string{RoleAdmin}, want: true},
		{role: RoleStudent, allow: []string{RoleAdmin, RoleTeacher}, want: false},
		{role: "", allow: []string{""}, want: false},
	}
	for _, tt := range tests {
		s := NewSession("sid", "tok", Identity{Role: tt.role})
		if got := s.HasRole(tt.allow...); got != tt.want {
			t.Errorf("HasRole(%q in %v) = %v, want %v", tt.role, tt.allow, got, tt.want)
		}
	}
}

func TestContextWithSession(t *testing.T) {
	s := NewSession("sid", "tok", Identity{Role: RoleStudent})
	if got := SessionFromContext(ContextWithSession(context.Background(), s)); got != s {
		t.Fatal("session not carried by context")
	}
}
