package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/polkiloo/campusfood/internal/domain/model"
)

func TestNewJWTStrategy_DefaultTTL(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	if strategy.ttl != 7*24*time.Hour {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
	if strategy.Name() != "jwt" {
		t.Fatalf("unexpected name: %s", strategy.Name())
	}
}

func TestJWTStrategy_IssueAndParse(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Minute})
	for _, principal := range []model.Principal{{ID: 42, Role: model.RoleStudent}, {ID: 7, Role: model.RoleVendor}} {
		token, err := strategy.IssueToken(principal)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		got, err := strategy.ParseToken(token)
		if err != nil {
			t.Fatalf("parse token: %v", err)
		}
		if got != principal {
			t.Fatalf("expected %+v, got %+v", principal, got)
		}
	}
}

func TestJWTStrategy_ParseRejectsGarbage(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	if _, err := strategy.ParseToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_ParseRejectsForeignSecret(t *testing.T) {
	token, err := NewJWTStrategy("other", Options{}).IssueToken(model.Principal{ID: 1, Role: model.RoleStudent})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := NewJWTStrategy("secret", Options{}).ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_ParseExpired(t *testing.T) {
	issuedAt := time.Now().Add(-2 * time.Hour)
	issuer := NewJWTStrategy("secret", Options{TTL: time.Hour, Now: func() time.Time { return issuedAt }})
	token, err := issuer.IssueToken(model.Principal{ID: 1, Role: model.RoleVendor})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := NewJWTStrategy("secret", Options{}).ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_ParseRejectsBadClaims(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	sign := func(c claims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("secret"))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	cases := map[string]claims{
		"bad subject":  {Role: model.RoleStudent, RegisteredClaims: jwt.RegisteredClaims{Subject: "abc", ExpiresAt: exp}},
		"unknown role": {Role: "admin", RegisteredClaims: jwt.RegisteredClaims{Subject: "1", ExpiresAt: exp}},
		"no expiry":    {Role: model.RoleStudent, RegisteredClaims: jwt.RegisteredClaims{Subject: "1"}},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := strategy.ParseToken(sign(c)); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestJWTStrategy_ParseRejectsNoneAlgorithm(t *testing.T) {
	c := claims{Role: model.RoleStudent, RegisteredClaims: jwt.RegisteredClaims{
		Subject: "1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewJWTStrategy("secret", Options{}).ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
