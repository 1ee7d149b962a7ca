package domain

// MenuItem is a single dish on the menu. Identity, name and description
// are immutable; only availability and price change via admin actions.
type MenuItem struct {
	ID          int
	Category    string
	Name        string
	Description string
	Price       float64
	Available   bool
}

// MenuCategories lists the categories in display order.
var MenuCategories = []string{"pizza", "burgers", "drinks", "desserts", "salads", "appetizers"}
