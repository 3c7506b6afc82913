package configs

import (
	"log"
	"time"

	"github.com/WA-TLE/interstellar-diet/entity"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the first employee account so the merchant side is
// reachable on a fresh database.
func SeedAdmin() error {
	db := DB()
	username := getEnv("ADMIN_USERNAME", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if username == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_USERNAME/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.Employee{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.Employee{
		Username: username,
		Password: string(hash),
		Name:     "Admin",
		Status:   entity.StatusEnabled,
	}
	admin.ApplyCreateAudit(time.Now(), 0)
	return db.Create(&admin).Error
}

// SeedCatalog inserts a minimal demo catalog when the table is empty.
func SeedCatalog() error {
	db := DB()

	var count int64
	db.Model(&entity.Category{}).Count(&count)
	if count > 0 {
		return nil
	}

	now := time.Now()
	cats := []entity.Category{
		{Type: entity.CategoryDish, Name: "Mains", Sort: 1, Status: entity.StatusEnabled},
		{Type: entity.CategoryDish, Name: "Drinks", Sort: 2, Status: entity.StatusEnabled},
		{Type: entity.CategorySetmeal, Name: "Combos", Sort: 3, Status: entity.StatusEnabled},
	}
	for i := range cats {
		cats[i].ApplyCreateAudit(now, 0)
		if err := db.Create(&cats[i]).Error; err != nil {
			return err
		}
	}

	dishes := []entity.Dish{
		{Name: "Kung Pao Chicken", CategoryID: cats[0].ID, Price: 3800, Status: entity.StatusEnabled},
		{Name: "Mapo Tofu", CategoryID: cats[0].ID, Price: 2600, Status: entity.StatusEnabled},
		{Name: "Jasmine Tea", CategoryID: cats[1].ID, Price: 600, Status: entity.StatusEnabled},
	}
	for i := range dishes {
		dishes[i].ApplyCreateAudit(now, 0)
		if err := db.Create(&dishes[i]).Error; err != nil {
			return err
		}
	}

	combo := entity.Setmeal{Name: "Lunch Combo", CategoryID: cats[2].ID, Price: 4200, Status: entity.StatusEnabled}
	combo.ApplyCreateAudit(now, 0)
	return db.Create(&combo).Error
}
