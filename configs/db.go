package configs

import (
	"github.com/WA-TLE/interstellar-diet/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {
	db.AutoMigrate(
		&entity.User{}, &entity.Employee{},
		&entity.AddressBook{},
		&entity.Category{}, &entity.Dish{}, &entity.DishFlavor{}, &entity.Setmeal{},
		&entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{},
	)
}
