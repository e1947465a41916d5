package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mfarias/backoffice-api/internal/application/dto"
	"github.com/mfarias/backoffice-api/internal/domain"
	"github.com/mfarias/backoffice-api/internal/domain/entity"
	"github.com/mfarias/backoffice-api/internal/domain/repository"
	pkgjwt "github.com/mfarias/backoffice-api/pkg/jwt"
)

// AuthUseCase registro y login de usuarios. La identidad del usuario autenticado
// es el actor que queda en compras y auditorías de precio.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	jwtSecret  string
	jwtIssuer  string
	expMinutes int
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(userRepo repository.UserRepository, jwtSecret, jwtIssuer string, expMinutes int) *AuthUseCase {
	return &AuthUseCase{
		userRepo:   userRepo,
		jwtSecret:  jwtSecret,
		jwtIssuer:  jwtIssuer,
		expMinutes: expMinutes,
	}
}

// Register crea un usuario con la contraseña hasheada (bcrypt).
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterUserRequest) (*entity.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.Validation("email", "email y contraseña son obligatorios")
	}
	if existing, err := uc.userRepo.GetByEmail(in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = "consulta"
	}
	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login valida credenciales y emite un JWT con user id y rol.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := pkgjwt.Generate(uc.jwtSecret, u.ID, u.Role, uc.jwtIssuer, uc.expMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, UserID: u.ID, Role: u.Role}, nil
}
