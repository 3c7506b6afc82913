package entity

type Setmeal struct {
	ID uint `json:"id" gorm:"primaryKey"`
	Audit

	CategoryID  uint   `json:"categoryId" gorm:"index"`
	Name        string `json:"name" gorm:"uniqueIndex"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Status      int    `json:"status"`
}
