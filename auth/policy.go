// ABOUTME: Authorization policies for the admin surface
// ABOUTME: Unifies session-presence and owner allow-list checks behind one contract
package auth

import (
	"errors"
	"net/http"
	"os"
	"strings"
)

// ErrUnauthorized is returned before any store call when a mutating request
// fails its policy check.
var ErrUnauthorized = errors.New("unauthorized")

// Caller carries whatever identity a request presented.
type Caller struct {
	Email   string
	Session string
}

// CallerFromRequest extracts the caller identity from request headers.
// The session token is opaque; this package never validates its contents,
// only its presence.
func CallerFromRequest(r *http.Request) Caller {
	c := Caller{Email: strings.TrimSpace(r.Header.Get("X-Admin-Email"))}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		c.Session = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return c
}

// AuthorizationPolicy decides whether a caller may mutate admin data.
type AuthorizationPolicy interface {
	Authorize(c Caller) error
}

// AnySessionPolicy authorizes any caller with a resolved session.
type AnySessionPolicy struct{}

func (AnySessionPolicy) Authorize(c Caller) error {
	if c.Session == "" {
		return ErrUnauthorized
	}
	return nil
}

// AllowListPolicy authorizes callers whose email is on the owner list. An
// empty list authorizes nobody unless AllowAll is set explicitly — open
// mode is a loud configuration choice, never an inferred default.
type AllowListPolicy struct {
	Owners   []string
	AllowAll bool
}

func (p AllowListPolicy) Authorize(c Caller) error {
	if p.AllowAll {
		return nil
	}
	email := strings.ToLower(strings.TrimSpace(c.Email))
	if email == "" {
		return ErrUnauthorized
	}
	for _, owner := range p.Owners {
		if strings.ToLower(strings.TrimSpace(owner)) == email {
			return nil
		}
	}
	return ErrUnauthorized
}

// OpenPolicy disables the gate entirely. Selected only when the gate is
// turned off by configuration — a local development escape hatch.
type OpenPolicy struct{}

func (OpenPolicy) Authorize(Caller) error { return nil }

// Config holds identity gate configuration.
type Config struct {
	Enabled  bool
	Owners   []string
	AllowAll bool
}

// LoadConfig reads gate configuration from the environment:
// SITEADMIN_AUTH_ENABLED, SITEADMIN_OWNER_EMAILS (comma-separated), and
// SITEADMIN_ALLOW_ALL.
func LoadConfig() Config {
	cfg := Config{}
	if v := os.Getenv("SITEADMIN_AUTH_ENABLED"); v != "" {
		cfg.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("SITEADMIN_OWNER_EMAILS"); v != "" {
		for _, e := range strings.Split(v, ",") {
			if e = strings.TrimSpace(e); e != "" {
				cfg.Owners = append(cfg.Owners, e)
			}
		}
	}
	if v := os.Getenv("SITEADMIN_ALLOW_ALL"); v != "" {
		cfg.AllowAll = v == "true" || v == "1"
	}
	return cfg
}

// PolicyFromConfig selects the policy for mutating endpoints. With the gate
// disabled every caller passes. With owners configured (or open mode
// explicitly requested) the allow-list applies; otherwise session presence
// is enough.
func PolicyFromConfig(cfg Config) AuthorizationPolicy {
	if !cfg.Enabled {
		return OpenPolicy{}
	}
	if len(cfg.Owners) > 0 || cfg.AllowAll {
		return AllowListPolicy{Owners: cfg.Owners, AllowAll: cfg.AllowAll}
	}
	return AnySessionPolicy{}
}
