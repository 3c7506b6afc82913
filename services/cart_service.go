package services

import (
	"errors"
	"fmt"

	"github.com/WA-TLE/interstellar-diet/entity"
	"github.com/WA-TLE/interstellar-diet/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CartService struct {
	DB          *gorm.DB
	CartRepo    *repository.CartRepository
	CatalogRepo *repository.CatalogRepository
	Log         *zap.Logger
}

func NewCartService(db *gorm.DB, cartRepo *repository.CartRepository, catalogRepo *repository.CatalogRepository, log *zap.Logger) *CartService {
	return &CartService{DB: db, CartRepo: cartRepo, CatalogRepo: catalogRepo, Log: log}
}

// CartItemRef names the item a cart mutation targets. Exactly one of DishID
// or SetmealID must be set; violating that is a caller contract error.
type CartItemRef struct {
	DishID    *uint  `json:"dishId"`
	SetmealID *uint  `json:"setmealId"`
	Flavor    string `json:"flavor"`
}

func (ref *CartItemRef) validate() error {
	if (ref.DishID == nil) == (ref.SetmealID == nil) {
		return errors.New("exactly one of dishId or setmealId must be set")
	}
	return nil
}

// Add merges into an existing row for the same item+flavor, or inserts a new
// row with the catalog name/image/price snapshotted at this moment.
func (s *CartService) Add(userID uint, ref *CartItemRef) error {
	if err := ref.validate(); err != nil {
		return err
	}

	existing, err := s.CartRepo.Find(userID, ref.DishID, ref.SetmealID, ref.Flavor)
	if err != nil {
		return err
	}
	if existing != nil {
		return s.DB.Transaction(func(tx *gorm.DB) error {
			return s.CartRepo.UpdateNumber(tx, existing.ID, existing.Number+1)
		})
	}

	item := entity.CartItem{
		UserID:    userID,
		DishID:    ref.DishID,
		SetmealID: ref.SetmealID,
		Flavor:    ref.Flavor,
		Number:    1,
	}

	if ref.DishID != nil {
		d, err := s.CatalogRepo.DishByID(*ref.DishID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("lookup dish: %w", err)
		}
		item.Name = d.Name
		item.Image = d.Image
		item.Amount = d.Price
	} else {
		m, err := s.CatalogRepo.SetmealByID(*ref.SetmealID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("lookup setmeal: %w", err)
		}
		item.Name = m.Name
		item.Image = m.Image
		item.Amount = m.Price
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.Insert(tx, &item)
	})
}

// Sub decrements the matching row, deleting it once the count reaches zero.
func (s *CartService) Sub(userID uint, ref *CartItemRef) error {
	if err := ref.validate(); err != nil {
		return err
	}

	existing, err := s.CartRepo.Find(userID, ref.DishID, ref.SetmealID, ref.Flavor)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrItemNotFound
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if existing.Number > 1 {
			return s.CartRepo.UpdateNumber(tx, existing.ID, existing.Number-1)
		}
		return s.CartRepo.Delete(tx, existing.ID)
	})
}

func (s *CartService) List(userID uint) ([]entity.CartItem, error) {
	return s.CartRepo.ListForUser(userID)
}

func (s *CartService) Clean(userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.Clear(tx, userID)
	})
}
