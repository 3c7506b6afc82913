package cache

import "fmt"

// Sellable-listing cache keys, partitioned by category.
const (
	DishListPrefix    = "dish_"
	SetmealListPrefix = "setmeal_"
)

func DishListKey(categoryID uint) string {
	return fmt.Sprintf("%s%d", DishListPrefix, categoryID)
}

func SetmealListKey(categoryID uint) string {
	return fmt.Sprintf("%s%d", SetmealListPrefix, categoryID)
}
