package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kacchi/model"
	"kacchi/repository"
	"kacchi/utils"
)

type ExpensesService struct {
	Expenses repository.ExpenseRepository
	Profiles repository.ProfileRepository
}

func NewExpensesService(store *repository.Store) *ExpensesService {
	return &ExpensesService{Expenses: store.Expenses, Profiles: store.Profiles}
}

func (svc *ExpensesService) Create(ctx context.Context, userID string, in model.ExpenseInput) (*model.Expense, error) {
	if err := requireRoom(in.RoomID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" || in.Amount == nil {
		return nil, model.NewValidationError("Title and amount are required")
	}

	category := in.Category
	if category == "" {
		category = model.DefaultExpenseCategory
	}
	if !category.Valid() {
		return nil, model.NewValidationError("Invalid category")
	}

	ts := now()
	date := ts
	if in.Date != nil && !in.Date.IsZero() {
		date = in.Date.UTC()
	}

	expense := &model.Expense{
		ID:          utils.NewID(),
		UserID:      userID,
		RoomID:      in.RoomID,
		Title:       in.Title,
		Amount:      *in.Amount,
		Category:    category,
		Date:        date,
		Description: in.Description,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := svc.Expenses.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	bumpStat(ctx, svc.Profiles, userID, model.StatExpenses, 1)
	utils.TrackContentOperation("expense", "create")
	return expense, nil
}

// List returns the matching expenses and the sum of their amounts.
func (svc *ExpensesService) List(ctx context.Context, userID string, filter model.ExpenseFilter) ([]*model.Expense, float64, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, 0, model.NewValidationError("Invalid category")
	}

	expenses, err := svc.Expenses.List(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}

	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return expenses, total, nil
}

func (svc *ExpensesService) Get(ctx context.Context, userID, id string) (*model.Expense, error) {
	return svc.Expenses.FindByID(ctx, userID, id)
}

func (svc *ExpensesService) Update(ctx context.Context, userID, id string, patch model.ExpensePatch) (*model.Expense, error) {
	if patch.Category != nil && !patch.Category.Valid() {
		return nil, model.NewValidationError("Invalid category")
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, model.NewValidationError("Title cannot be empty")
	}

	expense, err := svc.Expenses.Update(ctx, userID, id, patch)
	if err != nil {
		return nil, err
	}
	utils.TrackContentOperation("expense", "update")
	return expense, nil
}

func (svc *ExpensesService) Delete(ctx context.Context, userID, id string) (*model.Expense, error) {
	expense, err := svc.Expenses.Delete(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	bumpStat(ctx, svc.Profiles, userID, model.StatExpenses, -1)
	utils.TrackContentOperation("expense", "delete")
	return expense, nil
}

// Summary totals one calendar month, UTC.
func (svc *ExpensesService) Summary(ctx context.Context, userID string, year, month int) (*model.ExpenseSummary, error) {
	if month < 1 || month > 12 {
		return nil, model.NewValidationError("Month must be between 1 and 12")
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 1, 0)

	totals, err := svc.Expenses.CategoryTotals(ctx, userID, from, until)
	if err != nil {
		return nil, fmt.Errorf("expense summary: %w", err)
	}

	summary := &model.ExpenseSummary{
		Month:          month,
		Year:           year,
		CategoryTotals: make(map[model.ExpenseCategory]float64, len(totals)),
	}
	for _, ct := range totals {
		summary.CategoryTotals[ct.Category] = ct.Total
		summary.Total += ct.Total
		summary.ExpenseCount += ct.Count
	}
	return summary, nil
}

// ResolvePeriod reads the summary month. month is either 1-12 or YYYY-MM;
// missing parts default to the current month.
func ResolvePeriod(month, year string) (int, int, error) {
	current := now()
	y, m := current.Year(), int(current.Month())

	if month != "" {
		if t, err := time.Parse("2006-01", month); err == nil {
			return t.Year(), int(t.Month()), nil
		}
		n, err := strconv.Atoi(month)
		if err != nil || n < 1 || n > 12 {
			return 0, 0, model.NewValidationError("Month must be between 1 and 12 or YYYY-MM")
		}
		m = n
	}
	if year != "" {
		n, err := strconv.Atoi(year)
		if err != nil || n < 1 {
			return 0, 0, model.NewValidationError("Invalid year")
		}
		y = n
	}
	return y, m, nil
}
