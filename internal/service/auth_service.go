package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/slashrage/jalapeno-business/internal/apperrors"
	"github.com/slashrage/jalapeno-business/internal/config"
	"github.com/slashrage/jalapeno-business/internal/logger"
	"github.com/slashrage/jalapeno-business/internal/models"
	"github.com/slashrage/jalapeno-business/internal/repository"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UpdateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (string, error)
	GetUserFromToken(tokenString string) (*models.User, error)
	SeedAdmin(ctx context.Context) error
}

type authService struct {
	userRepo repository.UserRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, string, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, "", apperrors.Validation("неверные данные регистрации: " + err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         "user",
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, "", apperrors.Validation("неверный email или пароль")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.Validation("неверный email или пароль")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("неверные данные профиля: " + err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Email = req.Email

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdatePassword re-hashes the password after checking the current one
// and returns a fresh token
func (s *authService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (string, error) {
	if len(newPassword) < 6 {
		return "", apperrors.Validation("новый пароль должен быть не короче 6 символов")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return "", apperrors.Validation("неверный текущий пароль")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("ошибка хеширования пароля: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}

	return s.generateToken(user)
}

func (s *authService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.UserID.Hex(),
		"email":  user.Email,
		"role":   user.Role,
		"exp":    time.Now().Add(s.cfg.TokenDuration).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

func (s *authService) validateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("недействительный токен")
	}

	return token, nil
}

func (s *authService) GetUserFromToken(tokenString string) (*models.User, error) {
	token, err := s.validateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("неверный формат claims")
	}

	userID, ok1 := claims["userId"].(string)
	email, ok2 := claims["email"].(string)
	role, ok3 := claims["role"].(string)
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("неверные данные в токене")
	}

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("неверный идентификатор пользователя в токене")
	}

	return &models.User{
		UserID: objectID,
		Email:  email,
		Role:   role,
	}, nil
}

// SeedAdmin creates the admin on first start when the users collection
// is empty and the password is set in the environment
func (s *authService) SeedAdmin(ctx context.Context) error {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if s.cfg.Admin.Password == "" {
		logger.Warn("ADMIN_PASSWORD не задан, администратор не создан")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	admin := &models.User{
		Name:         "Admin",
		Email:        s.cfg.Admin.Email,
		PasswordHash: string(hash),
		Role:         "admin",
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	logger.Info("Создан администратор", "email", admin.Email)
	return nil
}
