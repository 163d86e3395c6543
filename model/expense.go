package model

import "time"

type ExpenseCategory string

const DefaultExpenseCategory ExpenseCategory = "Other"

var ExpenseCategories = []ExpenseCategory{
	"Food", "Transport", "Shopping", "Bills", "Entertainment", "Health", "Education", "Other",
}

func (c ExpenseCategory) Valid() bool {
	for _, ec := range ExpenseCategories {
		if c == ec {
			return true
		}
	}
	return false
}

type Expense struct {
	ID          string          `bson:"_id" json:"id"`
	UserID      string          `bson:"user_id" json:"userId"`
	RoomID      string          `bson:"room_id" json:"roomId"`
	Title       string          `bson:"title" json:"title"`
	Amount      float64         `bson:"amount" json:"amount"`
	Category    ExpenseCategory `bson:"category" json:"category"`
	Date        time.Time       `bson:"date" json:"date"`
	Description string          `bson:"description" json:"description"`
	CreatedAt   time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `bson:"updated_at" json:"updatedAt"`
}

type ExpenseInput struct {
	RoomID      string          `json:"roomId"`
	Title       string          `json:"title"`
	Amount      *float64        `json:"amount"`
	Category    ExpenseCategory `json:"category" binding:"omitempty,category"`
	Date        *Date           `json:"date"`
	Description string          `json:"description"`
}

type ExpensePatch struct {
	Title       *string          `json:"title"`
	Amount      *float64         `json:"amount"`
	Category    *ExpenseCategory `json:"category" binding:"omitempty,category"`
	Date        *Date            `json:"date"`
	Description *string          `json:"description"`
}

// ExpenseFilter bounds are inclusive.
type ExpenseFilter struct {
	From     *time.Time
	To       *time.Time
	Category ExpenseCategory
}

type CategoryTotal struct {
	Category ExpenseCategory `bson:"_id" json:"category"`
	Total    float64         `bson:"total" json:"total"`
	Count    int             `bson:"count" json:"count"`
}

type ExpenseSummary struct {
	Month          int                         `json:"month"`
	Year           int                         `json:"year"`
	Total          float64                     `json:"total"`
	CategoryTotals map[ExpenseCategory]float64 `json:"categoryTotals"`
	ExpenseCount   int                         `json:"expenseCount"`
}
