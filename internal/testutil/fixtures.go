package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Omkar-DesDev/Expense-Tracker/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the clear-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username/email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithName(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithName creates a user with the given username and a
// matching @test.com email.
func CreateTestUserWithName(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Email:    username + "@test.com",
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestExpense creates an expense dated date (YYYY-MM-DD) with the
// given category and amount (decimal string, e.g. "12.50").
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, date string, category models.Category, amount string) *models.Expense {
	t.Helper()

	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		t.Fatalf("invalid fixture date %q: %v", date, err)
	}

	expense := &models.Expense{
		UserID:   userID,
		Title:    fmt.Sprintf("Test Expense %d", nextID()),
		Category: category,
		Amount:   decimal.RequireFromString(amount),
		Date:     d,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateAliceScenario creates user "alice" with three expenses:
// (2024-01-05, Food, 12.50), (2024-02-10, Bills, 40.00), (2024-02-15, Food, 7.25).
func CreateAliceScenario(t *testing.T, db *gorm.DB) (*models.User, []*models.Expense) {
	t.Helper()

	alice := CreateTestUserWithName(t, db, fmt.Sprintf("alice%d", nextID()))
	expenses := []*models.Expense{
		CreateTestExpense(t, db, alice.ID, "2024-01-05", models.CategoryFood, "12.50"),
		CreateTestExpense(t, db, alice.ID, "2024-02-10", models.CategoryBills, "40.00"),
		CreateTestExpense(t, db, alice.ID, "2024-02-15", models.CategoryFood, "7.25"),
	}
	return alice, expenses
}
