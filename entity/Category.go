package entity

type Category struct {
	ID uint `json:"id" gorm:"primaryKey"`
	Audit

	Type   int    `json:"type"` // CategoryDish or CategorySetmeal
	Name   string `json:"name" gorm:"uniqueIndex"`
	Sort   int    `json:"sort"`
	Status int    `json:"status"`

	Dishes   []Dish    `json:"-" gorm:"foreignKey:CategoryID"`
	Setmeals []Setmeal `json:"-" gorm:"foreignKey:CategoryID"`
}
