package services

import (
	"time"

	"github.com/nishihata/food-saver/models"
	"github.com/nishihata/food-saver/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAuthService(db *gorm.DB, log *zap.Logger) *AuthService {
	return &AuthService{db: db, log: log}
}

// CreateAnonymousSession mints a fresh user row and a bearer token for it.
// There is nothing to authenticate; possession of the token is the
// identity.
func (s *AuthService) CreateAnonymousSession() (*models.User, string, error) {
	user := &models.User{ID: uuid.New(), CreatedAt: time.Now()}
	if err := s.db.Create(user).Error; err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateJWT(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("anonymous session created", zap.String("user_id", user.ID.String()))
	return user, token, nil
}
