package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Omkar-DesDev/Expense-Tracker/internal/errors"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/middleware"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/models"
)

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/refresh", handler.RefreshToken)
	r.POST("/auth/logout", injectUserID(testUserID), handler.Logout)
	r.GET("/profile", injectUserID(testUserID), handler.GetProfile)
	return r
}

func testUser() *models.User {
	return &models.User{
		Base:     models.Base{ID: testUserID},
		Username: "alice",
		Email:    "alice@example.com",
	}
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("returns 201 with tokens", func(t *testing.T) {
		var storedHash string
		userSvc := &mockUserService{
			createUserFn: func(username, email, _ string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: testUserID}, Username: username, Email: email}, nil
			},
			storeRefreshTokenHashFn: func(_, hash string) error {
				storedHash = hash
				return nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, http.MethodPost, "/auth/register",
			`{"username":"alice","email":"alice@example.com","password":"password123","confirm_password":"password123"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["access_token"] == "" || result["access_token"] == nil {
			t.Error("expected access token")
		}
		refresh, _ := result["refresh_token"].(string)
		if storedHash != middleware.HashToken(refresh) {
			t.Error("expected stored hash to match issued refresh token")
		}
		user := result["user"].(map[string]interface{})
		if user["username"] != "alice" {
			t.Errorf("expected username alice, got %v", user["username"])
		}
	})

	t.Run("passwords must match", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}))

		rec := doRequest(r, http.MethodPost, "/auth/register",
			`{"username":"alice","email":"alice@example.com","password":"password123","confirm_password":"password124"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("invalid email", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}))

		rec := doRequest(r, http.MethodPost, "/auth/register",
			`{"username":"alice","email":"not-an-email","password":"password123","confirm_password":"password123"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("duplicate user", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(_, _, _ string) (*models.User, error) {
				return nil, apperrors.ErrDuplicateUser
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, http.MethodPost, "/auth/register",
			`{"username":"alice","email":"alice@example.com","password":"password123","confirm_password":"password123"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_USER")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 with tokens", func(t *testing.T) {
		var gotLogin string
		userSvc := &mockUserService{
			attemptLoginFn: func(login, _ string) (*models.User, error) {
				gotLogin = login
				return testUser(), nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, http.MethodPost, "/auth/login", `{"login":"alice@example.com","password":"password123"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotLogin != "alice@example.com" {
			t.Errorf("expected login to be passed through, got %s", gotLogin)
		}
		if parseJSON(t, rec)["access_token"] == nil {
			t.Error("expected access token")
		}
	})

	t.Run("invalid credentials", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(_, _ string) (*models.User, error) {
				return nil, apperrors.ErrInvalidCredentials
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, http.MethodPost, "/auth/login", `{"login":"alice","password":"nope"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("locked account", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(_, _ string) (*models.User, error) {
				return nil, apperrors.ErrAccountLocked
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, http.MethodPost, "/auth/login", `{"login":"alice","password":"password123"}`)

		if rec.Code != http.StatusLocked {
			t.Fatalf("expected 423, got %d", rec.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}))

		rec := doRequest(r, http.MethodPost, "/auth/login", `{"login":"alice"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	t.Run("rotates tokens", func(t *testing.T) {
		refresh, err := middleware.GenerateRefreshToken(testUser())
		if err != nil {
			t.Fatalf("failed to generate refresh token: %v", err)
		}
		stored := middleware.HashToken(refresh)
		userSvc := &mockUserService{
			getRefreshTokenHashFn: func(string) (string, error) { return stored, nil },
			getUserByIDFn:         func(string) (*models.User, error) { return testUser(), nil },
			storeRefreshTokenHashFn: func(_, hash string) error {
				stored = hash
				return nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, http.MethodPost, "/auth/refresh", `{"refresh_token":"`+refresh+`"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		newRefresh, _ := parseJSON(t, rec)["refresh_token"].(string)
		if newRefresh == refresh {
			t.Error("expected a new refresh token")
		}
		if stored != middleware.HashToken(newRefresh) {
			t.Error("expected stored hash to be rotated")
		}

		// The old token no longer matches
		rec = doRequest(r, http.MethodPost, "/auth/refresh", `{"refresh_token":"`+refresh+`"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for reused token, got %d", rec.Code)
		}
	})

	t.Run("revoked token", func(t *testing.T) {
		refresh, _ := middleware.GenerateRefreshToken(testUser())
		userSvc := &mockUserService{
			getRefreshTokenHashFn: func(string) (string, error) { return "", nil },
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, http.MethodPost, "/auth/refresh", `{"refresh_token":"`+refresh+`"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_TOKEN")
	})

	t.Run("access token rejected", func(t *testing.T) {
		access, _ := middleware.GenerateAccessToken(testUser())
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}))

		rec := doRequest(r, http.MethodPost, "/auth/refresh", `{"refresh_token":"`+access+`"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	cleared := false
	userSvc := &mockUserService{
		storeRefreshTokenHashFn: func(userID, hash string) error {
			cleared = userID == testUserID && hash == ""
			return nil
		},
	}
	r := setupAuthRouter(NewAuthHandler(userSvc))

	rec := doRequest(r, http.MethodPost, "/auth/logout", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !cleared {
		t.Error("expected refresh token hash to be cleared")
	}
}

func TestAuthHandler_GetProfile(t *testing.T) {
	t.Run("returns profile", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByIDFn: func(id string) (*models.User, error) {
				if id != testUserID {
					t.Errorf("expected user ID %s, got %s", testUserID, id)
				}
				return testUser(), nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, http.MethodGet, "/profile", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		user := parseJSON(t, rec)["user"].(map[string]interface{})
		if user["email"] != "alice@example.com" {
			t.Errorf("unexpected profile %v", user)
		}
	})

	t.Run("user not found", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByIDFn: func(string) (*models.User, error) { return nil, apperrors.ErrUserNotFound },
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, http.MethodGet, "/profile", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
