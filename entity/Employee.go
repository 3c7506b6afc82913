package entity

// Employee is merchant-side staff. Catalog and order management run under
// an employee identity, which also feeds the audit columns.
type Employee struct {
	ID uint `json:"id" gorm:"primaryKey"`
	Audit

	Username string `json:"username" gorm:"uniqueIndex"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Status   int    `json:"status"`
}
