package entity

type Dish struct {
	ID uint `json:"id" gorm:"primaryKey"`
	Audit

	Name        string `json:"name" gorm:"uniqueIndex"`
	CategoryID  uint   `json:"categoryId" gorm:"index"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Status      int    `json:"status"`

	Flavors []DishFlavor `json:"flavors" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
