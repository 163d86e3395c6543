package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"kacchi/model"
)

type ExpensesRepo struct {
	t *table[model.Expense]
}

func NewExpensesRepo() *ExpensesRepo {
	return &ExpensesRepo{t: newTable(func(e *model.Expense) (string, string) { return e.ID, e.UserID })}
}

func expenseDate(e *model.Expense) time.Time    { return e.Date }
func expenseCreated(e *model.Expense) time.Time { return e.CreatedAt }

func (r *ExpensesRepo) Create(_ context.Context, expense *model.Expense) error {
	return r.t.insert(expense)
}

func (r *ExpensesRepo) FindByID(_ context.Context, userID, id string) (*model.Expense, error) {
	return r.t.get(userID, id)
}

func (r *ExpensesRepo) List(_ context.Context, userID string, f model.ExpenseFilter) ([]*model.Expense, error) {
	expenses := r.t.owned(userID, func(e *model.Expense) bool {
		if f.Category != "" && e.Category != f.Category {
			return false
		}
		return inRange(e.Date, f.From, f.To)
	})
	sortByDate(expenses, expenseDate, expenseCreated)
	return expenses, nil
}

func (r *ExpensesRepo) Recent(_ context.Context, userID string, n int64) ([]*model.Expense, error) {
	expenses := r.t.owned(userID, nil)
	sortByDate(expenses, expenseDate, expenseCreated)
	return limit(expenses, n), nil
}

func (r *ExpensesRepo) Update(_ context.Context, userID, id string, patch model.ExpensePatch) (*model.Expense, error) {
	return r.t.update(userID, id, func(e *model.Expense) {
		if patch.Title != nil {
			e.Title = *patch.Title
		}
		if patch.Amount != nil {
			e.Amount = *patch.Amount
		}
		if patch.Category != nil {
			e.Category = *patch.Category
		}
		if patch.Date != nil {
			e.Date = patch.Date.Time
		}
		if patch.Description != nil {
			e.Description = *patch.Description
		}
		e.UpdatedAt = now()
	})
}

func (r *ExpensesRepo) Delete(_ context.Context, userID, id string) (*model.Expense, error) {
	return r.t.remove(userID, id)
}

func (r *ExpensesRepo) Count(_ context.Context, userID string) (int64, error) {
	return r.t.count(userID), nil
}

func (r *ExpensesRepo) Search(_ context.Context, userID string, q model.SearchQuery) ([]*model.Expense, error) {
	expenses := r.t.owned(userID, func(e *model.Expense) bool {
		return anyContains(q.Text, e.Title, e.Description, string(e.Category))
	})
	sortByDate(expenses, expenseDate, expenseCreated)
	return limit(expenses, q.Limit), nil
}

func (r *ExpensesRepo) CategoryTotals(_ context.Context, userID string, from, until time.Time) ([]model.CategoryTotal, error) {
	expenses := r.t.owned(userID, func(e *model.Expense) bool {
		return !e.Date.Before(from) && e.Date.Before(until)
	})

	byCategory := make(map[model.ExpenseCategory]*model.CategoryTotal)
	for _, e := range expenses {
		ct, ok := byCategory[e.Category]
		if !ok {
			ct = &model.CategoryTotal{Category: e.Category}
			byCategory[e.Category] = ct
		}
		ct.Total += e.Amount
		ct.Count++
	}

	totals := make([]model.CategoryTotal, 0, len(byCategory))
	for _, ct := range byCategory {
		totals = append(totals, *ct)
	}
	slices.SortFunc(totals, func(a, b model.CategoryTotal) int {
		return strings.Compare(string(a.Category), string(b.Category))
	})
	return totals, nil
}
