package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"consent-backend/config"
	"consent-backend/models"
)

// TokenExpiry is the lifetime of an admin access token.
const TokenExpiry = 24 * time.Hour

// AdminService authenticates backend admins and issues JWT access tokens.
type AdminService struct {
	DB        *gorm.DB
	jwtSecret []byte
}

func NewAdminService(db *gorm.DB, jwtSecret string) *AdminService {
	if db == nil {
		db = config.DB
	}
	return &AdminService{DB: db, jwtSecret: []byte(jwtSecret)}
}

// Login verifies credentials and returns a signed token plus the admin row.
func (s *AdminService) Login(username, password string) (string, models.Admin, error) {
	var admin models.Admin
	if err := s.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.Admin{}, ErrInvalidCredentials
		}
		return "", models.Admin{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return "", models.Admin{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(admin)
	if err != nil {
		return "", models.Admin{}, err
	}
	return token, admin, nil
}

func (s *AdminService) issueToken(admin models.Admin) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  admin.ID,
		"username": admin.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(TokenExpiry).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}
