package entity

// ShoppingListItem is the summed amount of one ingredient across a shopping cart.
type ShoppingListItem struct {
	Name            string
	MeasurementUnit string
	Total           int64
}

// ShoppingList is a user's aggregated cart, ordered by ingredient name.
type ShoppingList struct {
	Username string
	Items    []ShoppingListItem
}
