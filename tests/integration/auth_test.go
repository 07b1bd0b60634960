package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAuthFlow_RegisterLoginProfileRefresh(t *testing.T) {
	app := setupApp(t)

	// Step 1: Register
	accessToken, refreshToken, userID := app.registerUser(t, "auth", "password123")
	if accessToken == "" || refreshToken == "" {
		t.Fatal("expected non-empty tokens from registration")
	}
	if userID == "" {
		t.Fatal("expected user ID")
	}

	// Step 2: Login by username and by email
	app.loginUser(t, "auth", "password123")
	loginAccess, loginRefresh := app.loginUser(t, "auth@test.com", "password123")

	// Step 3: Access profile with login access token
	rec := app.request(http.MethodGet, "/api/v1/profile", "", loginAccess)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	user := parseJSON(t, rec)["user"].(map[string]interface{})
	if user["username"] != "auth" || user["id"] != userID {
		t.Errorf("unexpected profile %v", user)
	}

	// Step 4: Refresh token
	body := fmt.Sprintf(`{"refresh_token":%q}`, loginRefresh)
	rec = app.request(http.MethodPost, "/api/v1/auth/refresh", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh failed: %d %s", rec.Code, rec.Body.String())
	}
	newAccess := parseJSON(t, rec)["access_token"].(string)

	// Step 5: Access profile with new access token
	rec = app.request(http.MethodGet, "/api/v1/profile", "", newAccess)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with new token, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 6: The rotated refresh token cannot be reused
	rec = app.request(http.MethodPost, "/api/v1/auth/refresh", body, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for rotated refresh token, got %d", rec.Code)
	}
}

func TestAuthFlow_RegisterDuplicate(t *testing.T) {
	app := setupApp(t)

	app.registerUser(t, "dup", "password123")

	rec := app.request(http.MethodPost, "/api/v1/auth/register",
		`{"username":"dup","email":"other@test.com","password":"password123","confirm_password":"password123"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate username, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "DUPLICATE_USER" {
		t.Errorf("expected DUPLICATE_USER, got %s", code)
	}

	rec = app.request(http.MethodPost, "/api/v1/auth/register",
		`{"username":"other","email":"DUP@test.com","password":"password123","confirm_password":"password123"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthFlow_LockoutAfterFailedLogins(t *testing.T) {
	app := setupApp(t)

	app.registerUser(t, "locked", "password123")

	for i := 0; i < 5; i++ {
		rec := app.request(http.MethodPost, "/api/v1/auth/login", `{"login":"locked","password":"wrong"}`, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, rec.Code)
		}
	}

	rec := app.request(http.MethodPost, "/api/v1/auth/login", `{"login":"locked","password":"password123"}`, "")
	if rec.Code != http.StatusLocked {
		t.Fatalf("expected 423 after lockout, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthFlow_Logout(t *testing.T) {
	app := setupApp(t)

	access, refresh, _ := app.registerUser(t, "leaver", "password123")

	rec := app.request(http.MethodPost, "/api/v1/auth/logout", "", access)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := fmt.Sprintf(`{"refresh_token":%q}`, refresh)
	rec = app.request(http.MethodPost, "/api/v1/auth/refresh", body, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}

func TestAuthFlow_ProtectedRoutesRequireToken(t *testing.T) {
	app := setupApp(t)

	for _, path := range []string{"/api/v1/profile", "/api/v1/dashboard", "/api/v1/export", "/api/v1/categories"} {
		rec := app.request(http.MethodGet, path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, rec.Code)
		}
	}
}

func TestHealth(t *testing.T) {
	app := setupApp(t)

	rec := app.request(http.MethodGet, "/api/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
