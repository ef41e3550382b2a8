package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/udex/lapizza-api/internal/models"
)

func intPtr(v int) *int { return &v }

func testVariants() []models.ProductItem {
	return []models.ProductItem{
		{ID: 1, Price: 20, Size: intPtr(20), PizzaType: intPtr(TypeThin)},
		{ID: 2, Price: 25, Size: intPtr(30), PizzaType: intPtr(TypeThin)},
	}
}

func testIngredients() []models.Ingredient {
	return []models.Ingredient{
		{ID: 1, Name: "Cheddar", Price: 2},
		{ID: 2, Name: "Bacon", Price: 3},
	}
}

func TestCalcPizzaPrice(t *testing.T) {
	total := CalcPizzaPrice(TypeThin, 30, testVariants(), testIngredients(), map[int]bool{1: true, 2: true})
	assert.Equal(t, 30.0, total)
}

func TestCalcPizzaPriceNoIngredients(t *testing.T) {
	total := CalcPizzaPrice(TypeThin, 20, testVariants(), testIngredients(), nil)
	assert.Equal(t, 20.0, total)
}

func TestCalcPizzaPriceNoMatchingVariant(t *testing.T) {
	// No traditional 40 variant exists: the base price silently falls back to
	// zero and only the selected ingredients are charged.
	total := CalcPizzaPrice(TypeTraditional, 40, testVariants(), testIngredients(), map[int]bool{1: true, 2: true})
	assert.Equal(t, 5.0, total)
}

func TestCalcPizzaPriceIgnoresUnknownSelection(t *testing.T) {
	total := CalcPizzaPrice(TypeThin, 30, testVariants(), testIngredients(), map[int]bool{99: true})
	assert.Equal(t, 25.0, total)
}

func TestPizzaDetails(t *testing.T) {
	total, details := PizzaDetails(TypeThin, 30, testVariants(), testIngredients(), map[int]bool{2: true})
	assert.Equal(t, 28.0, total)
	assert.Equal(t, "30 sm, thin pizza", details)
}

func TestValidSize(t *testing.T) {
	assert.True(t, ValidSize(20))
	assert.True(t, ValidSize(30))
	assert.True(t, ValidSize(40))
	assert.False(t, ValidSize(25))
}

func TestValidType(t *testing.T) {
	assert.True(t, ValidType(TypeThin))
	assert.True(t, ValidType(TypeTraditional))
	assert.False(t, ValidType(0))
	assert.False(t, ValidType(3))
}
