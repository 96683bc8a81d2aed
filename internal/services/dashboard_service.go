package services

import (
	"sort"
	"time"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// UncategorizedLabel groups transactions without a category in breakdowns.
const UncategorizedLabel = "Uncategorized"

// DashboardStats is the summary block shown at the top of the dashboard.
type DashboardStats struct {
	TotalExpenses         float64              `json:"total_expenses"`
	TotalIncome           float64              `json:"total_income"`
	Balance               float64              `json:"balance"`
	MostExpensiveCategory string               `json:"most_expensive_category"`
	RecentTransactions    []models.Transaction `json:"recent_transactions"`
}

// CategoryExpense is one slice of the category breakdown.
type CategoryExpense struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// MonthlyExpense is one point of the monthly expense series.
type MonthlyExpense struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// ChartDataset is one series of a chart payload, with explicit style
// attributes instead of an untyped bag.
type ChartDataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	Fill            bool      `json:"fill,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
	BorderColor     string    `json:"border_color,omitempty"`
	BackgroundColor []string  `json:"background_color,omitempty"`
}

// ChartData is the chart-ready shape consumed by the dashboard client.
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// dashboardService folds transaction lists into dashboard aggregates. It
// reads through a TransactionSource and holds no state of its own, so any
// source implementation aggregates identically.
type dashboardService struct {
	source TransactionSource
	now    func() time.Time
}

// NewDashboardService creates a new DashboardServicer backed by source.
func NewDashboardService(source TransactionSource) DashboardServicer {
	return &dashboardService{source: source, now: time.Now}
}

// GetStats returns totals, balance, the most expensive category, and the
// five most recent transactions for the given range.
func (s *dashboardService) GetStats(userID, dateRange string) (*DashboardStats, error) {
	transactions, err := s.fetchRange(userID, dateRange)
	if err != nil {
		return nil, err
	}

	stats := Summarize(transactions)
	stats.RecentTransactions = MostRecent(transactions, 5)
	return &stats, nil
}

// GetCategoryExpenses returns expense totals grouped by category name for
// the given range, largest first.
func (s *dashboardService) GetCategoryExpenses(userID, dateRange string) ([]CategoryExpense, error) {
	transactions, err := s.fetchRange(userID, dateRange)
	if err != nil {
		return nil, err
	}
	return ExpensesByCategory(transactions), nil
}

// GetMonthlyExpenses returns twelve expense totals, January through
// December of the given year.
func (s *dashboardService) GetMonthlyExpenses(userID string, year int) ([]MonthlyExpense, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 59, 59, 999999999, time.UTC)

	transactions, err := s.source.GetTransactionsByDateRange(userID, start, end)
	if err != nil {
		return nil, err
	}
	return MonthlyExpenseTotals(transactions, year), nil
}

// GetRecentTransactions returns the user's most recent transactions,
// newest first. Limit defaults to 5.
func (s *dashboardService) GetRecentTransactions(userID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 5
	}

	now := s.now()
	transactions, err := s.source.GetTransactionsByDateRange(userID, now.AddDate(-1, 0, 0), now)
	if err != nil {
		return nil, err
	}
	return MostRecent(transactions, limit), nil
}

func (s *dashboardService) fetchRange(userID, dateRange string) ([]models.Transaction, error) {
	start, end, err := resolveRange(dateRange, s.now())
	if err != nil {
		return nil, err
	}
	return s.source.GetTransactionsByDateRange(userID, start, end)
}

// resolveRange maps a named range onto a concrete interval ending now:
// "week" covers the last seven days, "month" the current calendar month so
// far, "year" the current calendar year so far.
func resolveRange(dateRange string, now time.Time) (time.Time, time.Time, error) {
	switch dateRange {
	case "week":
		return now.AddDate(0, 0, -7), now, nil
	case "month", "":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, now, nil
	case "year":
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return start, now, nil
	}
	return time.Time{}, time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "range must be week, month, or year")
}

// Summarize folds a transaction list into totals, balance, and the most
// expensive category. It is a pure function of its input.
func Summarize(transactions []models.Transaction) DashboardStats {
	var stats DashboardStats
	expenseByCategory := make(map[string]float64)

	for _, t := range transactions {
		switch t.Type {
		case models.TransactionTypeIncome:
			stats.TotalIncome += t.Amount
		case models.TransactionTypeExpense:
			stats.TotalExpenses += t.Amount
			expenseByCategory[categoryLabel(t)] += t.Amount
		}
	}

	stats.Balance = stats.TotalIncome - stats.TotalExpenses

	var best float64
	for name, amount := range expenseByCategory {
		if amount > best || (amount == best && stats.MostExpensiveCategory != "" && name < stats.MostExpensiveCategory) {
			best = amount
			stats.MostExpensiveCategory = name
		}
	}

	return stats
}

// ExpensesByCategory folds expenses into per-category totals, sorted by
// amount descending with name as tie-breaker.
func ExpensesByCategory(transactions []models.Transaction) []CategoryExpense {
	totals := make(map[string]float64)
	for _, t := range transactions {
		if t.Type != models.TransactionTypeExpense {
			continue
		}
		totals[categoryLabel(t)] += t.Amount
	}

	result := make([]CategoryExpense, 0, len(totals))
	for name, amount := range totals {
		result = append(result, CategoryExpense{Category: name, Amount: amount})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Amount != result[j].Amount {
			return result[i].Amount > result[j].Amount
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// MonthlyExpenseTotals folds expenses into one total per month of the
// given year, January through December.
func MonthlyExpenseTotals(transactions []models.Transaction, year int) []MonthlyExpense {
	totals := make([]float64, 12)
	for _, t := range transactions {
		if t.Type != models.TransactionTypeExpense || t.Date.Year() != year {
			continue
		}
		totals[int(t.Date.Month())-1] += t.Amount
	}

	result := make([]MonthlyExpense, 12)
	for i := 0; i < 12; i++ {
		result[i] = MonthlyExpense{
			Month:  time.Month(i + 1).String()[:3],
			Amount: totals[i],
		}
	}
	return result
}

// MostRecent returns up to limit transactions ordered by date descending.
func MostRecent(transactions []models.Transaction, limit int) []models.Transaction {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// piePalette cycles across category slices.
var piePalette = []string{
	"rgba(255, 99, 132, 0.8)",
	"rgba(54, 162, 235, 0.8)",
	"rgba(255, 206, 86, 0.8)",
	"rgba(75, 192, 192, 0.8)",
	"rgba(153, 102, 255, 0.8)",
}

// CategoryChartData transforms a category breakdown into a pie chart
// payload. Pure function, no hidden state.
func CategoryChartData(items []CategoryExpense) ChartData {
	labels := make([]string, len(items))
	data := make([]float64, len(items))
	colors := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Category
		data[i] = item.Amount
		colors[i] = piePalette[i%len(piePalette)]
	}
	return ChartData{
		Labels: labels,
		Datasets: []ChartDataset{{
			Data:            data,
			BackgroundColor: colors,
		}},
	}
}

// MonthlyChartData transforms a monthly series into a line chart payload.
// Pure function, no hidden state.
func MonthlyChartData(items []MonthlyExpense) ChartData {
	labels := make([]string, len(items))
	data := make([]float64, len(items))
	for i, item := range items {
		labels[i] = item.Month
		data[i] = item.Amount
	}
	return ChartData{
		Labels: labels,
		Datasets: []ChartDataset{{
			Label:           "Monthly Expenses",
			Data:            data,
			Fill:            true,
			Tension:         0.5,
			BorderColor:     "rgb(75, 192, 192)",
			BackgroundColor: []string{"rgba(75, 192, 192, 0.3)"},
		}},
	}
}

func categoryLabel(t models.Transaction) string {
	if t.Category != nil && t.Category.Name != "" {
		return t.Category.Name
	}
	return UncategorizedLabel
}
