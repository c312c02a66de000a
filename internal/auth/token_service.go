package auth

import (
	"errors"
	"time"

	"github.com/comandago/gin-orders-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// AccessTokenTTL is the lifetime of issued access tokens
	AccessTokenTTL = 24 * time.Hour
	// RefreshTokenTTL is the lifetime of issued refresh tokens
	RefreshTokenTTL = 30 * 24 * time.Hour
)

var (
	ErrRefreshTokenNotFound = errors.New("refresh_token_not_found")
	ErrRefreshTokenExpired  = errors.New("refresh_token_expired")
)

// TokenPair is an access/refresh token pair returned on login and refresh.
type TokenPair struct {
	Access    string `json:"access"`
	Refresh   string `json:"refresh"`
	ExpiresIn int64  `json:"expires_in"`
}

// TokenService issues JWT access tokens and manages persisted refresh tokens.
type TokenService interface {
	// IssuePair generates a new access/refresh pair for the user
	IssuePair(user *models.User) (*TokenPair, error)
	// Refresh exchanges a valid refresh token for a new pair, rotating the old one
	Refresh(refreshToken string) (*TokenPair, error)
	// Revoke invalidates a single refresh token
	Revoke(refreshToken string) error
	// RevokeAllForUser invalidates every refresh token held by the user
	RevokeAllForUser(userID uint) error
}

type tokenService struct {
	db     *gorm.DB
	secret []byte
}

// NewTokenService creates a TokenService backed by the given database.
func NewTokenService(db *gorm.DB, jwtSecret string) TokenService {
	return &tokenService{db: db, secret: []byte(jwtSecret)}
}

func (s *tokenService) IssuePair(user *models.User) (*TokenPair, error) {
	now := time.Now()

	// Role is embedded in the token so the middleware never has to hit the
	// database on every request.
	claims := jwt.MapClaims{
		"uid":  float64(user.ID),
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(AccessTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	access, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	refresh := uuid.NewString()
	record := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: now.Add(RefreshTokenTTL),
	}
	if err := s.db.Create(record).Error; err != nil {
		return nil, err
	}

	return &TokenPair{
		Access:    access,
		Refresh:   refresh,
		ExpiresIn: int64(AccessTokenTTL.Seconds()),
	}, nil
}

func (s *tokenService) Refresh(refreshToken string) (*TokenPair, error) {
	var record models.RefreshToken
	if err := s.db.Where("token = ?", refreshToken).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, err
	}

	if time.Now().After(record.ExpiresAt) {
		s.db.Delete(&record)
		return nil, ErrRefreshTokenExpired
	}

	var user models.User
	if err := s.db.First(&user, record.UserID).Error; err != nil {
		return nil, err
	}

	// Rotate: the consumed refresh token is no longer valid.
	if err := s.db.Delete(&record).Error; err != nil {
		return nil, err
	}

	return s.IssuePair(&user)
}

func (s *tokenService) Revoke(refreshToken string) error {
	result := s.db.Where("token = ?", refreshToken).Delete(&models.RefreshToken{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRefreshTokenNotFound
	}
	return nil
}

func (s *tokenService) RevokeAllForUser(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}
