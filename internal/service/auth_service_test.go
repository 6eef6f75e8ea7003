package service

import (
	"errors"
	"testing"
	"time"

	"github.com/ecommerce-api/internal/config"
	"github.com/ecommerce-api/internal/models"
)

func TestAuthRegisterLoginAndMe(t *testing.T) {
	f := newServiceFixture(t, "auth_register_login")

	registered, err := f.auth.Register(RegisterInput{Email: " New.User@Example.com ", Password: "Secret123", FirstName: "New"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if registered.User.Email != "new.user@example.com" || registered.User.Role != "Customer" {
		t.Fatalf("unexpected user %+v", registered.User)
	}
	if registered.Token == "" || registered.RefreshToken == "" {
		t.Fatalf("tokens should be issued")
	}

	if _, err := f.auth.Register(RegisterInput{Email: "new.user@example.com", Password: "Secret123"}); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("duplicate email want bad request got %v", err)
	}

	if _, err := f.auth.Login(LoginInput{Email: "new.user@example.com", Password: "wrong-pass"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("wrong password want unauthorized got %v", err)
	}
	logged, err := f.auth.Login(LoginInput{Email: "NEW.USER@example.com", Password: "Secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := f.auth.ParseAccessToken(logged.Token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.Subject != logged.User.ID || claims.Role != "Customer" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	me, err := f.auth.Me(logged.User.ID)
	if err != nil {
		t.Fatalf("me failed: %v", err)
	}
	if me.FirstName != "New" {
		t.Fatalf("first name want New got %s", me.FirstName)
	}
}

func TestAuthRegisterWeakPassword(t *testing.T) {
	f := newServiceFixture(t, "auth_weak_password")
	_, err := f.auth.Register(RegisterInput{Email: "weak@example.com", Password: "short"})
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("want bad request got %v", err)
	}
}

func TestAuthLoginInactiveCustomer(t *testing.T) {
	f := newServiceFixture(t, "auth_inactive")
	customer := f.createCustomer(t, "inactive@example.com")
	if err := f.db.Model(&models.Customer{}).Where("id = ?", customer.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := f.auth.Login(LoginInput{Email: "inactive@example.com", Password: "Passw0rd!"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("inactive login want unauthorized got %v", err)
	}
}

func TestAuthRefreshWrongTokenRejected(t *testing.T) {
	f := newServiceFixture(t, "auth_refresh_wrong")
	f.createCustomer(t, "refresh@example.com")
	logged, err := f.auth.Login(LoginInput{Email: "refresh@example.com", Password: "Passw0rd!"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := f.auth.Refresh(logged.Token, "not-the-token"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("wrong refresh token want unauthorized got %v", err)
	}
	if _, err := f.auth.Refresh("garbage", logged.RefreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("garbage access token want unauthorized got %v", err)
	}
}

func TestAuthRefreshRotatesToken(t *testing.T) {
	f := newServiceFixture(t, "auth_refresh_rotate")
	customer := f.createCustomer(t, "rotate@example.com")
	logged, err := f.auth.Login(LoginInput{Email: "rotate@example.com", Password: "Passw0rd!"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	refreshed, err := f.auth.Refresh(logged.Token, logged.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.RefreshToken == logged.RefreshToken {
		t.Fatalf("refresh token should rotate")
	}

	var stored models.Customer
	if err := f.db.First(&stored, "id = ?", customer.ID).Error; err != nil {
		t.Fatalf("load customer failed: %v", err)
	}
	if stored.RefreshToken != refreshed.RefreshToken {
		t.Fatalf("stored refresh token want %s got %s", refreshed.RefreshToken, stored.RefreshToken)
	}

	if _, err := f.auth.Refresh(refreshed.Token, logged.RefreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("old refresh token want unauthorized got %v", err)
	}
}

func TestAuthRefreshExpiredAccessTokenAccepted(t *testing.T) {
	f := newServiceFixture(t, "auth_refresh_expired")
	f.createCustomer(t, "expired-token@example.com")
	f.auth.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	logged, err := f.auth.Login(LoginInput{Email: "expired-token@example.com", Password: "Passw0rd!"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	f.auth.now = time.Now

	if _, err := f.auth.ParseAccessToken(logged.Token); err == nil {
		t.Fatalf("expired access token should fail full validation")
	}
	if _, err := f.auth.Refresh(logged.Token, logged.RefreshToken); err != nil {
		t.Fatalf("refresh with expired access token failed: %v", err)
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	policy := config.PasswordPolicyConfig{MinLength: 8, RequireUpper: true, RequireLower: true, RequireNumber: true}
	cases := []struct {
		password string
		ok       bool
	}{
		{"Abcdefg1", true},
		{"Abc1", false},
		{"abcdefg1", false},
		{"ABCDEFG1", false},
		{"Abcdefgh", false},
	}
	for _, tc := range cases {
		err := validatePassword(policy, tc.password)
		if tc.ok && err != nil {
			t.Fatalf("%s should pass got %v", tc.password, err)
		}
		if !tc.ok && !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("%s want weak password got %v", tc.password, err)
		}
	}
	if err := validatePassword(config.PasswordPolicyConfig{}, "x"); err != nil {
		t.Fatalf("empty policy should accept anything got %v", err)
	}
}

func TestAuthRefreshTokenPastExpiryRejected(t *testing.T) {
	f := newServiceFixture(t, "auth_refresh_token_expired")
	f.createCustomer(t, "stale@example.com")
	logged, err := f.auth.Login(LoginInput{Email: "stale@example.com", Password: "Passw0rd!"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	f.auth.now = func() time.Time { return time.Now().AddDate(0, 0, f.cfg.JWT.RefreshTokenExpiryDays+1) }
	_, err = f.auth.Refresh(logged.Token, logged.RefreshToken)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("want unauthorized got %v", err)
	}
	if err.Error() != msgInvalidRefresh {
		t.Fatalf("message want %q got %q", msgInvalidRefresh, err.Error())
	}
}
