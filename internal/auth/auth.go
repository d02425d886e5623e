// Package auth checks assembly logins and issues session tokens.
//
// The password of an assembly is its own name, compared without regard
// to case. Tokens are only issued, and only required, when a signing
// secret is configured.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/district-ledger/backend/internal/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

const (
	RoleAssembly = "assembly"
	RoleAdmin    = "admin"

	// TokenLifetime is how long session tokens are valid.
	TokenLifetime = 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("the assembly or password is incorrect")
	ErrMissingCredentials = errors.New("assembly and password are required")
	ErrMissingToken       = errors.New("this endpoint requires a bearer token in the Authorization header")
	ErrInvalidToken       = errors.New("the token is invalid or has expired")
	ErrForbidden          = errors.New("this endpoint requires the admin role")
)

// DefaultRoster is used when no roster is configured.
var DefaultRoster = []string{
	"BETHEL",
	"EBENEZER",
	"EMMANUEL",
	"GRACE",
	"HOPE",
	"MOUNT ZION",
	"NEW JERUSALEM",
	"PHILADELPHIA",
	"REHOBOTH",
	"SHILOH",
}

// DefaultAdminPatterns match the names of district accounts.
var DefaultAdminPatterns = []string{"DISTRICT*"}

// Session is the result of a successful login.
type Session struct {
	Assembly string `json:"assembly" example:"EMMANUEL"`
	Role     string `json:"role" example:"assembly"`
	Token    string `json:"token,omitempty" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // Only set when tokens are enabled
}

// Claims are the claims of a session token.
type Claims struct {
	Assembly string `json:"assembly"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	roster []string
	admins []string
	secret []byte
	now    func() time.Time
}

// New returns an Authenticator. Names and patterns are canonicalized,
// an empty roster or pattern list selects the defaults.
func New(roster, adminPatterns []string, secret string) *Authenticator {
	if len(roster) == 0 {
		roster = DefaultRoster
	}

	if len(adminPatterns) == 0 {
		adminPatterns = DefaultAdminPatterns
	}

	a := &Authenticator{
		secret: []byte(secret),
		now:    time.Now,
	}

	for _, name := range roster {
		if name = types.AssemblyName(name); name != "" && !slices.Contains(a.roster, name) {
			a.roster = append(a.roster, name)
		}
	}
	slices.Sort(a.roster)

	for _, pattern := range adminPatterns {
		if pattern = types.AssemblyName(pattern); pattern != "" {
			a.admins = append(a.admins, pattern)
		}
	}

	return a
}

// Roster returns the canonical names of all assemblies in alphabetical order.
func (a *Authenticator) Roster() []string {
	return slices.Clone(a.roster)
}

// Enabled reports if tokens are issued and required.
func (a *Authenticator) Enabled() bool {
	return len(a.secret) > 0
}

// Role returns the role of the assembly.
func (a *Authenticator) Role(assembly string) string {
	name := types.AssemblyName(assembly)
	for _, pattern := range a.admins {
		if glob.Glob(pattern, name) {
			return RoleAdmin
		}
	}
	return RoleAssembly
}

// Known reports if the assembly is in the roster or an admin account.
func (a *Authenticator) Known(assembly string) bool {
	name := types.AssemblyName(assembly)
	if name == "" {
		return false
	}

	_, found := slices.BinarySearch(a.roster, name)
	return found || a.Role(name) == RoleAdmin
}

// Login checks the credentials and returns the session.
func (a *Authenticator) Login(assembly, password string) (Session, error) {
	name := types.AssemblyName(assembly)
	if name == "" || password == "" {
		return Session{}, ErrMissingCredentials
	}

	if !a.Known(name) || !strings.EqualFold(strings.TrimSpace(password), name) {
		return Session{}, ErrInvalidCredentials
	}

	s := Session{
		Assembly: name,
		Role:     a.Role(name),
	}

	if a.Enabled() {
		token, err := a.Token(s.Assembly, s.Role)
		if err != nil {
			return Session{}, err
		}
		s.Token = token
	}

	return s, nil
}

// Token returns a signed token for the assembly.
func (a *Authenticator) Token(assembly, role string) (string, error) {
	now := a.now()
	claims := Claims{
		Assembly: assembly,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   assembly,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Validate parses the token and returns its claims.
func (a *Authenticator) Validate(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
