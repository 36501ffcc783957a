package service

import (
	"strings"
	"sync"

	"github.com/Sanni11/slapbook/internal/config"
	"github.com/Sanni11/slapbook/internal/model"
	"github.com/Sanni11/slapbook/internal/repository"
	"github.com/Sanni11/slapbook/internal/util"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration and login. Both are gated by the
// configured email allow-list: slapbook is a private club, addresses outside
// the list never get an account and existing accounts stop working when
// removed from the list.
type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config

	mu      sync.RWMutex
	allowed map[string]bool
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	s := &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
	s.UpdateAllowlist(cfg.Allowlist.Emails)
	return s
}

// UpdateAllowlist replaces the allowed email set. Called at startup and by
// the config watcher when configs/config.yaml changes.
func (s *AuthService) UpdateAllowlist(emails []string) {
	allowed := make(map[string]bool, len(emails))
	for _, email := range emails {
		allowed[strings.ToLower(email)] = true
	}

	s.mu.Lock()
	s.allowed = allowed
	s.mu.Unlock()
}

func (s *AuthService) Allowlisted(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allowed[strings.ToLower(email)]
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (s *AuthService) Register(req RegisterRequest) (*model.User, error) {
	if !s.Allowlisted(req.Email) {
		return nil, util.ErrNotAllowlisted
	}

	if _, err := s.UserRepo.FindByEmail(req.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if _, err := s.UserRepo.FindByUsername(req.Username); err == nil {
		return nil, util.ErrUsernameTaken
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    strings.ToLower(req.Email),
		Password: string(hashedPassword),
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}

func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	if !s.Allowlisted(email) {
		return "", nil, util.ErrNotAllowlisted
	}

	user, err := s.UserRepo.FindByEmail(strings.ToLower(email))
	if err != nil {
		return "", nil, util.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrUserNotFound
	}

	s.UserRepo.UpdateLastLogin(user.ID)

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
