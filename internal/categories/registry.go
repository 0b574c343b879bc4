// Package categories holds the static spending categories and resolves
// identifiers to them. Unknown identifiers resolve to the "Other" category.
package categories

import "spendtrack/internal/core"

var registry = []core.Category{
	{ID: "groceries", Name: "Groceries", Color: "#4CAF50", Icon: "ShoppingBag"},
	{ID: "housing", Name: "Housing", Color: "#2196F3", Icon: "Home"},
	{ID: "dining", Name: "Dining Out", Color: "#FF9800", Icon: "Utensils"},
	{ID: "transportation", Name: "Transportation", Color: "#607D8B", Icon: "Car"},
	{ID: "travel", Name: "Travel", Color: "#9C27B0", Icon: "Plane"},
	{ID: "bills", Name: "Bills", Color: "#F44336", Icon: "Wallet"},
	{ID: "health", Name: "Health", Color: "#E91E63", Icon: "HeartPulse"},
	{ID: "clothing", Name: "Clothing", Color: "#8BC34A", Icon: "Shirt"},
	{ID: "entertainment", Name: "Entertainment", Color: "#673AB7", Icon: "Ticket"},
	{ID: "education", Name: "Education", Color: "#009688", Icon: "GraduationCap"},
	{ID: "technology", Name: "Technology", Color: "#3F51B5", Icon: "Smartphone"},
	{ID: core.FallbackCategoryID, Name: "Other", Color: "#9E9E9E", Icon: "Brush"},
}

var byID = func() map[string]int {
	idx := make(map[string]int, len(registry))
	for i, c := range registry {
		idx[c.ID] = i
	}
	return idx
}()

// All returns the categories in display order. The fallback is last.
func All() []core.Category {
	return append([]core.Category(nil), registry...)
}

// Fallback returns the "Other" category.
func Fallback() core.Category {
	return registry[byID[core.FallbackCategoryID]]
}

// Known reports whether id names a registered category.
func Known(id string) bool {
	_, ok := byID[id]
	return ok
}

// Resolve returns the category for id, or the fallback when id is unknown.
func Resolve(id string) core.Category {
	if i, ok := byID[id]; ok {
		return registry[i]
	}
	return Fallback()
}

func ColorOf(id string) string { return Resolve(id).Color }

func IconOf(id string) string { return Resolve(id).Icon }
