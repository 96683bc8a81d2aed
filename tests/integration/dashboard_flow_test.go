package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

// seedDashboard creates a small ledger for the current month: income 2000,
// expenses 300 on Food and 100 uncategorized.
func seedDashboard(t *testing.T, app *testApp, token string) {
	t.Helper()
	categoryID := app.createCategory(t, token, "Food")
	today := time.Now().UTC().Format("2006-01-02T15:04:05Z07:00")

	app.createTransaction(t, token,
		fmt.Sprintf(`{"amount":2000,"description":"Salary","type":"income","date":%q}`, today))
	app.createTransaction(t, token,
		fmt.Sprintf(`{"amount":300,"description":"Groceries","type":"expense","category_id":%q,"date":%q}`, categoryID, today))
	app.createTransaction(t, token,
		fmt.Sprintf(`{"amount":100,"description":"Misc","type":"expense","date":%q}`, today))
}

func TestDashboardFlow_Stats(t *testing.T) {
	app := setupApp(t)
	token := app.signup(t, "stats@test.com")
	seedDashboard(t, app, token)

	rec := app.request("GET", "/api/v1/transactions/stats?range=month", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	stats := parseJSON(t, rec)
	if stats["total_income"] != 2000.0 {
		t.Errorf("expected income 2000, got %v", stats["total_income"])
	}
	if stats["total_expenses"] != 400.0 {
		t.Errorf("expected expenses 400, got %v", stats["total_expenses"])
	}
	if stats["balance"] != 1600.0 {
		t.Errorf("expected balance 1600, got %v", stats["balance"])
	}
	if stats["most_expensive_category"] != "Food" {
		t.Errorf("expected Food, got %v", stats["most_expensive_category"])
	}
	recent := stats["recent_transactions"].([]interface{})
	if len(recent) != 3 {
		t.Errorf("expected 3 recent transactions, got %d", len(recent))
	}

	rec = app.request("GET", "/api/v1/transactions/stats?range=decade", "", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown range, got %d", rec.Code)
	}
}

func TestDashboardFlow_CategoryBreakdown(t *testing.T) {
	app := setupApp(t)
	token := app.signup(t, "breakdown@test.com")
	seedDashboard(t, app, token)

	rec := app.request("GET", "/api/v1/transactions/by-category", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)

	categories := result["categories"].([]interface{})
	if len(categories) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(categories))
	}
	top := categories[0].(map[string]interface{})
	if top["category"] != "Food" || top["amount"] != 300.0 {
		t.Errorf("expected Food 300 first, got %v", top)
	}
	second := categories[1].(map[string]interface{})
	if second["category"] != "Uncategorized" || second["amount"] != 100.0 {
		t.Errorf("expected Uncategorized 100 second, got %v", second)
	}

	chart := result["chart"].(map[string]interface{})
	labels := chart["labels"].([]interface{})
	if len(labels) != 2 || labels[0] != "Food" {
		t.Errorf("unexpected chart labels %v", labels)
	}
}

func TestDashboardFlow_MonthlyAndRecent(t *testing.T) {
	app := setupApp(t)
	token := app.signup(t, "monthly@test.com")
	seedDashboard(t, app, token)

	year := time.Now().UTC().Year()
	rec := app.request("GET", fmt.Sprintf("/api/v1/transactions/monthly?year=%d", year), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	months := result["months"].([]interface{})
	if len(months) != 12 {
		t.Fatalf("expected 12 months, got %d", len(months))
	}
	var total float64
	for _, m := range months {
		total += m.(map[string]interface{})["amount"].(float64)
	}
	if total != 400.0 {
		t.Errorf("expected yearly expense total 400, got %v", total)
	}
	chart := result["chart"].(map[string]interface{})
	datasets := chart["datasets"].([]interface{})
	if datasets[0].(map[string]interface{})["label"] != "Monthly Expenses" {
		t.Error("expected Monthly Expenses dataset label")
	}

	rec = app.request("GET", "/api/v1/transactions/recent?limit=2", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	recent := parseJSON(t, rec)["transactions"].([]interface{})
	if len(recent) != 2 {
		t.Errorf("expected 2 recent transactions, got %d", len(recent))
	}
}
