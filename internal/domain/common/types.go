// Package common holds domain types and sentinel errors shared across services.
package common

// Currency is an ISO 4217 currency code from the closed set the engine understands.
type Currency string

const (
	VND Currency = "VND"
	USD Currency = "USD"
	EUR Currency = "EUR"
	JPY Currency = "JPY"
	GBP Currency = "GBP"
	CNY Currency = "CNY"
)

// CurrencyInfo describes how a currency is displayed. The engine only reads
// the symbol table; all locale-specific formatting belongs to the caller.
type CurrencyInfo struct {
	Symbol string
	Name   string
	Locale string
}

// Currencies is the static currency display table.
var Currencies = map[Currency]CurrencyInfo{
	VND: {Symbol: "₫", Name: "Việt Nam Đồng", Locale: "vi-VN"},
	USD: {Symbol: "$", Name: "US Dollar", Locale: "en-US"},
	EUR: {Symbol: "€", Name: "Euro", Locale: "de-DE"},
	JPY: {Symbol: "¥", Name: "Japanese Yen", Locale: "ja-JP"},
	GBP: {Symbol: "£", Name: "British Pound", Locale: "en-GB"},
	CNY: {Symbol: "¥", Name: "Chinese Yuan", Locale: "zh-CN"},
}

// Valid reports whether c is a known currency code.
func (c Currency) Valid() bool {
	_, ok := Currencies[c]
	return ok
}

// Category is static display configuration for a spending category.
type Category struct {
	ID   string
	Name string
	Icon string
}

// ExpenseCategories is the closed set of expense categories.
var ExpenseCategories = []Category{
	{ID: "food", Name: "Ăn uống", Icon: "🍽️"},
	{ID: "transport", Name: "Giao thông", Icon: "🚗"},
	{ID: "shopping", Name: "Mua sắm", Icon: "🛒"},
	{ID: "bills", Name: "Hóa đơn", Icon: "📄"},
	{ID: "entertainment", Name: "Giải trí", Icon: "🎬"},
	{ID: "health", Name: "Sức khỏe", Icon: "🏥"},
	{ID: "education", Name: "Giáo dục", Icon: "📚"},
	{ID: "other", Name: "Khác", Icon: "📦"},
}

// IncomeCategories is the closed set of income categories.
var IncomeCategories = []Category{
	{ID: "salary", Name: "Lương", Icon: "💰"},
	{ID: "bonus", Name: "Thưởng", Icon: "🎁"},
	{ID: "investment", Name: "Đầu tư", Icon: "📈"},
	{ID: "other", Name: "Khác", Icon: "💵"},
}

// ExpenseCategoryByID looks up an expense category by its id.
func ExpenseCategoryByID(id string) (Category, bool) {
	for _, c := range ExpenseCategories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// ValidExpenseCategory reports whether id is a member of the expense set.
func ValidExpenseCategory(id string) bool {
	_, ok := ExpenseCategoryByID(id)
	return ok
}

// ValidIncomeCategory reports whether id is a member of the income set.
func ValidIncomeCategory(id string) bool {
	for _, c := range IncomeCategories {
		if c.ID == id {
			return true
		}
	}
	return false
}
