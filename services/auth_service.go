package services

import (
	"strings"
	"time"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"
	"backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	DB    *gorm.DB
	Users *repository.UserRepository
	Carts *CartService

	JWTSecret string
	JWTTTL    time.Duration
}

func NewAuthService(db *gorm.DB, users *repository.UserRepository, carts *CartService, secret string, ttl time.Duration) *AuthService {
	return &AuthService{DB: db, Users: users, Carts: carts, JWTSecret: secret, JWTTTL: ttl}
}

type RegisterIn struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *AuthService) Register(in *RegisterIn) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := s.Users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         entity.RoleCustomer,
	}
	if err := s.Users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates and, when the requester carried a guest cart, merges it
// into the customer's cart.
func (s *AuthService) Login(in *LoginIn, guestCartID uint) (*entity.User, string, error) {
	user, err := s.Users.GetByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", apperr.Validation("invalid email or password", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, "", apperr.Validation("invalid email or password", nil)
	}
	if !user.IsActive {
		return nil, "", apperr.Forbidden("user is inactive")
	}

	if guestCartID != 0 {
		if err := s.Carts.MergeGuestCart(guestCartID, user.ID); err != nil {
			return nil, "", err
		}
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.JWTSecret, s.JWTTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Me(userID uint) (*entity.User, error) {
	return s.Users.Get(userID)
}
