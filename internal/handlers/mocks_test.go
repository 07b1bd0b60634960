package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Omkar-DesDev/Expense-Tracker/internal/export"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/logger"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/middleware"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/models"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/services"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	createUserFn            func(username, email, password string) (*models.User, error)
	getUserByIDFn           func(id string) (*models.User, error)
	getUserByLoginFn        func(login string) (*models.User, error)
	verifyPasswordFn        func(user *models.User, password string) bool
	attemptLoginFn          func(login, password string) (*models.User, error)
	storeRefreshTokenHashFn func(userID, tokenHash string) error
	getRefreshTokenHashFn   func(userID string) (string, error)
}

func (m *mockUserService) CreateUser(_ context.Context, username, email, password string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(username, email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	if m.getUserByLoginFn != nil {
		return m.getUserByLoginFn(login)
	}
	return &models.User{}, nil
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool {
	if m.verifyPasswordFn != nil {
		return m.verifyPasswordFn(user, password)
	}
	return true
}

func (m *mockUserService) AttemptLogin(_ context.Context, login, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(login, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) StoreRefreshTokenHash(_ context.Context, userID, tokenHash string) error {
	if m.storeRefreshTokenHashFn != nil {
		return m.storeRefreshTokenHashFn(userID, tokenHash)
	}
	return nil
}

func (m *mockUserService) GetRefreshTokenHash(_ context.Context, userID string) (string, error) {
	if m.getRefreshTokenHashFn != nil {
		return m.getRefreshTokenHashFn(userID)
	}
	return "", nil
}

type mockExpenseService struct {
	createExpenseFn func(userID string, input services.ExpenseInput) (*models.Expense, error)
	getExpenseFn    func(userID, expenseID string) (*models.Expense, error)
	updateExpenseFn func(userID, expenseID string, input services.ExpenseInput) (*models.Expense, error)
	deleteExpenseFn func(userID, expenseID string) error
	listExpensesFn  func(userID string, filter services.ExpenseFilter) ([]models.Expense, error)
}

func (m *mockExpenseService) CreateExpense(_ context.Context, userID string, input services.ExpenseInput) (*models.Expense, error) {
	if m.createExpenseFn != nil {
		return m.createExpenseFn(userID, input)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) GetExpense(_ context.Context, userID, expenseID string) (*models.Expense, error) {
	if m.getExpenseFn != nil {
		return m.getExpenseFn(userID, expenseID)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) UpdateExpense(_ context.Context, userID, expenseID string, input services.ExpenseInput) (*models.Expense, error) {
	if m.updateExpenseFn != nil {
		return m.updateExpenseFn(userID, expenseID, input)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) DeleteExpense(_ context.Context, userID, expenseID string) error {
	if m.deleteExpenseFn != nil {
		return m.deleteExpenseFn(userID, expenseID)
	}
	return nil
}

func (m *mockExpenseService) ListExpenses(_ context.Context, userID string, filter services.ExpenseFilter) ([]models.Expense, error) {
	if m.listExpensesFn != nil {
		return m.listExpensesFn(userID, filter)
	}
	return []models.Expense{}, nil
}

type mockAnalyticsService struct {
	totalFn      func(userID string) (float64, error)
	monthlyFn    func(userID string) ([]services.MonthlyTotal, error)
	categoriesFn func(userID string) ([]services.CategorySum, error)
}

func (m *mockAnalyticsService) TotalForUser(_ context.Context, userID string) (float64, error) {
	if m.totalFn != nil {
		return m.totalFn(userID)
	}
	return 0, nil
}

func (m *mockAnalyticsService) MonthlyTotals(_ context.Context, userID string) ([]services.MonthlyTotal, error) {
	if m.monthlyFn != nil {
		return m.monthlyFn(userID)
	}
	return []services.MonthlyTotal{}, nil
}

func (m *mockAnalyticsService) CategorySums(_ context.Context, userID string) ([]services.CategorySum, error) {
	if m.categoriesFn != nil {
		return m.categoriesFn(userID)
	}
	return []services.CategorySum{}, nil
}

type mockExportService struct {
	exportFn func(userID string, filter services.ExpenseFilter, format export.Format) (*services.ExportFile, error)
}

func (m *mockExportService) Export(_ context.Context, userID string, filter services.ExpenseFilter, format export.Format) (*services.ExportFile, error) {
	if m.exportFn != nil {
		return m.exportFn(userID, filter, format)
	}
	return &services.ExportFile{Filename: "expenses.csv", ContentType: "text/csv"}, nil
}

// --- test helpers ---

const testUserID = "0190a7a4-1111-7000-8000-000000000001"

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
