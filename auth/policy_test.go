// ABOUTME: Tests for authorization policy strategies
// ABOUTME: Covers session presence, allow-list matching, and explicit open mode
package auth

import (
	"net/http/httptest"
	"testing"
)

func TestAnySessionPolicy(t *testing.T) {
	p := AnySessionPolicy{}

	if err := p.Authorize(Caller{Session: "tok"}); err != nil {
		t.Errorf("Expected session to authorize, got %v", err)
	}
	if err := p.Authorize(Caller{Email: "owner@example.com"}); err != ErrUnauthorized {
		t.Errorf("Expected ErrUnauthorized without session, got %v", err)
	}
}

func TestAllowListPolicy(t *testing.T) {
	p := AllowListPolicy{Owners: []string{"Owner@Example.com"}}

	if err := p.Authorize(Caller{Email: "owner@example.com"}); err != nil {
		t.Errorf("Expected case-insensitive match, got %v", err)
	}
	if err := p.Authorize(Caller{Email: "other@example.com"}); err != ErrUnauthorized {
		t.Errorf("Expected rejection for unlisted email, got %v", err)
	}
	if err := p.Authorize(Caller{Session: "tok"}); err != ErrUnauthorized {
		t.Errorf("Session alone must not satisfy the allow-list, got %v", err)
	}
}

func TestAllowListEmptyRejectsWithoutAllowAll(t *testing.T) {
	p := AllowListPolicy{}
	if err := p.Authorize(Caller{Email: "anyone@example.com"}); err != ErrUnauthorized {
		t.Errorf("Empty list must reject unless AllowAll is set, got %v", err)
	}

	open := AllowListPolicy{AllowAll: true}
	if err := open.Authorize(Caller{}); err != nil {
		t.Errorf("AllowAll must authorize everyone, got %v", err)
	}
}

func TestPolicyFromConfig(t *testing.T) {
	if _, ok := PolicyFromConfig(Config{}).(OpenPolicy); !ok {
		t.Error("Disabled gate should select OpenPolicy")
	}
	if _, ok := PolicyFromConfig(Config{Enabled: true}).(AnySessionPolicy); !ok {
		t.Error("Enabled gate without owners should select AnySessionPolicy")
	}
	if _, ok := PolicyFromConfig(Config{Enabled: true, Owners: []string{"a@b.c"}}).(AllowListPolicy); !ok {
		t.Error("Enabled gate with owners should select AllowListPolicy")
	}
}

func TestCallerFromRequest(t *testing.T) {
	r := httptest.NewRequest("POST", "/content", nil)
	r.Header.Set("Authorization", "Bearer tok-123")
	r.Header.Set("X-Admin-Email", " owner@example.com ")

	c := CallerFromRequest(r)
	if c.Session != "tok-123" {
		t.Errorf("Expected session tok-123, got %q", c.Session)
	}
	if c.Email != "owner@example.com" {
		t.Errorf("Expected trimmed email, got %q", c.Email)
	}

	empty := CallerFromRequest(httptest.NewRequest("GET", "/content", nil))
	if empty.Session != "" || empty.Email != "" {
		t.Errorf("Expected empty caller, got %+v", empty)
	}
}
