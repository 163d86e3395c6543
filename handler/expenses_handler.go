package handler

import (
	"kacchi/middleware"
	"kacchi/model"
	"kacchi/usecase"
	"kacchi/utils"

	"github.com/gin-gonic/gin"
)

func CreateExpenseHandler(c *gin.Context, expenses *usecase.ExpensesService) {
	var in model.ExpenseInput
	if !bindJSON(c, &in) {
		return
	}

	expense, err := expenses.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		utils.RespondError(c, err, "Expense")
		return
	}

	utils.Created(c, "Expense added successfully", expense)
}

// GetExpensesHandler supports ?from=&to=&category= filters.
func GetExpensesHandler(c *gin.Context, expenses *usecase.ExpensesService) {
	from, to, err := model.ParseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		utils.RespondError(c, err, "Expense")
		return
	}
	filter := model.ExpenseFilter{
		From:     from,
		To:       to,
		Category: model.ExpenseCategory(c.Query("category")),
	}

	list, total, err := expenses.List(c.Request.Context(), middleware.UserID(c), filter)
	if err != nil {
		utils.RespondError(c, err, "Expense")
		return
	}

	utils.ListWithTotal(c, found(len(list), "expense", "expenses"), list, len(list), total)
}

func GetExpenseSummaryHandler(c *gin.Context, expenses *usecase.ExpensesService) {
	year, month, err := usecase.ResolvePeriod(c.Query("month"), c.Query("year"))
	if err != nil {
		utils.RespondError(c, err, "Expense")
		return
	}

	summary, err := expenses.Summary(c.Request.Context(), middleware.UserID(c), year, month)
	if err != nil {
		utils.RespondError(c, err, "Expense")
		return
	}

	utils.Success(c, "Monthly summary generated", summary)
}

func GetExpenseHandler(c *gin.Context, expenses *usecase.ExpensesService) {
	expense, err := expenses.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Expense")
		return
	}

	utils.Success(c, "Expense loaded successfully", expense)
}

func UpdateExpenseHandler(c *gin.Context, expenses *usecase.ExpensesService) {
	var patch model.ExpensePatch
	if !bindJSON(c, &patch) {
		return
	}

	expense, err := expenses.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), patch)
	if err != nil {
		utils.RespondError(c, err, "Expense")
		return
	}

	utils.Success(c, "Expense updated successfully", expense)
}

func DeleteExpenseHandler(c *gin.Context, expenses *usecase.ExpensesService) {
	expense, err := expenses.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Expense")
		return
	}

	utils.Success(c, "Expense deleted successfully", deleted("deletedExpense", gin.H{"id": expense.ID, "title": expense.Title}))
}
