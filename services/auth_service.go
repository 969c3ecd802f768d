package services

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/RafaelMendes244/RMPedidos/entity"
	"github.com/RafaelMendes244/RMPedidos/pkg/apperr"
	"github.com/RafaelMendes244/RMPedidos/repository"
	"github.com/RafaelMendes244/RMPedidos/utils"
)

// AuthService signs panel users in. The panel is the only authenticated
// surface; customers never have accounts.
type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{userRepo: repo, jwtSecret: secret, jwtTTL: ttl}
}

func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", nil, apperr.New(apperr.Validation, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.New(apperr.Validation, "invalid credentials")
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.Unexpected, "cannot generate token", err)
	}
	return token, user, nil
}

func (s *AuthService) Profile(userID uint) (*entity.User, []entity.Tenant, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, nil, apperr.New(apperr.NotFound, "user not found")
	}
	tenants, err := s.userRepo.TenantsOf(userID)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.Unexpected, "could not load stores", err)
	}
	return user, tenants, nil
}
