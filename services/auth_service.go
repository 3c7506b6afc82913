package services

import (
	"errors"
	"strings"
	"time"

	"github.com/WA-TLE/interstellar-diet/entity"
	"github.com/WA-TLE/interstellar-diet/repository"
	"github.com/WA-TLE/interstellar-diet/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	EmpRepo  *repository.EmployeeRepository

	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, empRepo *repository.EmployeeRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{UserRepo: userRepo, EmpRepo: empRepo, jwtSecret: secret, jwtTTL: ttl}
}

func (s *AuthService) Register(username, password, name, phone string) (*entity.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	count, err := s.UserRepo.CountByUsername(username)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username: username,
		Password: string(hashed),
		Name:     strings.TrimSpace(name),
		Phone:    strings.TrimSpace(phone),
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) LoginUser(username, password string) (string, *entity.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		return "", nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, ErrBadCredentials
	}

	token, err := utils.GenerateToken(user.ID, "customer", s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) LoginEmployee(username, password string) (string, *entity.Employee, error) {
	emp, err := s.EmpRepo.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		return "", nil, ErrBadCredentials
	}
	if emp.Status != entity.StatusEnabled {
		return "", nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(emp.Password), []byte(password)) != nil {
		return "", nil, ErrBadCredentials
	}

	token, err := utils.GenerateToken(emp.ID, "employee", s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, emp, nil
}

// CreateEmployee is invoked by an existing employee; actorID feeds the audit columns.
func (s *AuthService) CreateEmployee(actorID uint, username, password, name, phone string) (*entity.Employee, error) {
	if _, err := s.EmpRepo.FindByUsername(username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	emp := &entity.Employee{
		Username: strings.TrimSpace(username),
		Password: string(hashed),
		Name:     strings.TrimSpace(name),
		Phone:    strings.TrimSpace(phone),
		Status:   entity.StatusEnabled,
	}
	emp.ApplyCreateAudit(time.Now(), actorID)

	if err := s.EmpRepo.Create(emp); err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *AuthService) SetEmployeeStatus(actorID, id uint, status int) error {
	emp, err := s.EmpRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	emp.Status = status
	emp.ApplyUpdateAudit(time.Now(), actorID)
	return s.EmpRepo.Update(emp)
}

func (s *AuthService) PageEmployees(name string, page, limit int) ([]entity.Employee, int64, error) {
	return s.EmpRepo.Page(name, page, limit)
}
