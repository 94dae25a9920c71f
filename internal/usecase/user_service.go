package usecase

import (
	"context"

	"github.com/hirwaf/task-management-be/internal/entity"
	"github.com/hirwaf/task-management-be/internal/infrastructure/auth"
	"github.com/hirwaf/task-management-be/internal/repository"
)

type UserService struct {
	userRepo        repository.IUserRepository
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
}

func NewUserService(
	userRepo repository.IUserRepository,
	passwordManager *auth.PasswordManager,
	jwtManager *auth.JWTManager,
) *UserService {
	return &UserService{
		userRepo:        userRepo,
		passwordManager: passwordManager,
		jwtManager:      jwtManager,
	}
}

// Register регистрирует нового пользователя
func (s *UserService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.LoginResponse, error) {
	// Проверяем, что пользователь с таким email не существует
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, entity.ErrEmailTaken
	}

	passwordHash, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.CreateWithAuth(ctx, req.Name, req.Email, passwordHash)
	if err != nil {
		return nil, err
	}

	return s.loginResponse(user)
}

// Login проверяет учетные данные и выдает токен.
// Неверный email и неверный пароль наружу неразличимы.
func (s *UserService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.passwordManager.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, entity.ErrInvalidCredentials
	}

	return s.loginResponse(user)
}

// ListUsers - все пользователи кроме запрашивающего
func (s *UserService) ListUsers(ctx context.Context, exceptID int) ([]entity.User, error) {
	return s.userRepo.ListExcept(ctx, exceptID)
}

func (s *UserService) loginResponse(user *entity.User) (*entity.LoginResponse, error) {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, email)
	if err != nil {
		return nil, err
	}

	return &entity.LoginResponse{
		User:        user,
		AccessToken: token,
	}, nil
}
