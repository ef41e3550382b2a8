package pricing

import (
	"fmt"

	"github.com/udex/lapizza-api/internal/models"
)

// Pizza sizes in centimeters and crust types as stored on product variants.
const (
	SizeSmall  = 20
	SizeMedium = 30
	SizeLarge  = 40

	TypeThin        = 1
	TypeTraditional = 2
)

var typeNames = map[int]string{
	TypeThin:        "thin",
	TypeTraditional: "traditional",
}

// ValidSize reports whether size is one of the supported pizza diameters.
func ValidSize(size int) bool {
	return size == SizeSmall || size == SizeMedium || size == SizeLarge
}

// ValidType reports whether pizzaType is a known crust type.
func ValidType(pizzaType int) bool {
	_, ok := typeNames[pizzaType]
	return ok
}

// TypeName returns the display name for a crust type, or an empty string for
// unknown values.
func TypeName(pizzaType int) string {
	return typeNames[pizzaType]
}

// CalcPizzaPrice computes the total cost of one pizza configuration: the price
// of the variant matching the requested crust type and size, plus the prices
// of the selected ingredients found in the catalog. A configuration with no
// matching variant contributes a zero base price rather than failing; bad
// data entry shows up as a suspiciously cheap pizza, not an error.
func CalcPizzaPrice(pizzaType, size int, items []models.ProductItem, ingredients []models.Ingredient, selected map[int]bool) float64 {
	var total float64
	for _, item := range items {
		if item.PizzaType != nil && *item.PizzaType == pizzaType && item.Size != nil && *item.Size == size {
			total = item.Price
			break
		}
	}

	for _, ingredient := range ingredients {
		if selected[ingredient.ID] {
			total += ingredient.Price
		}
	}
	return total
}

// Description renders the configuration label shown on cart and order lines,
// e.g. "30 sm, thin pizza".
func Description(pizzaType, size int) string {
	return fmt.Sprintf("%d sm, %s pizza", size, TypeName(pizzaType))
}

// PizzaDetails returns the total price together with the human-readable
// description of the configuration.
func PizzaDetails(pizzaType, size int, items []models.ProductItem, ingredients []models.Ingredient, selected map[int]bool) (float64, string) {
	return CalcPizzaPrice(pizzaType, size, items, ingredients, selected), Description(pizzaType, size)
}
