package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/comexweb/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService authenticates and manages back office accounts.
type UserService struct {
	db *gorm.DB
}

// NewUserService returns a UserService.
func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{db: gdb}
}

// UserInput creates or updates an account. An empty password on update
// keeps the current one.
type UserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role" validate:"required,oneof=ADMIN EDITOR"`
}

// Authenticate returns the user whose email and password match.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*db.User, error) {
	var user db.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Get fetches a user by id.
func (s *UserService) Get(ctx context.Context, id uint) (*db.User, error) {
	var user db.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

// EnsureUser creates the account if the email is not registered yet.
func (s *UserService) EnsureUser(ctx context.Context, email, password, role string) error {
	return db.EnsureUser(s.db.WithContext(ctx), email, password, role)
}

// List returns all accounts ordered by email.
func (s *UserService) List(ctx context.Context) ([]db.User, error) {
	var users []db.User
	if err := s.db.WithContext(ctx).Order("email asc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Create registers a new account.
func (s *UserService) Create(ctx context.Context, in UserInput) (*db.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = strings.ToUpper(strings.TrimSpace(in.Role))
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if len(in.Password) < 8 {
		return nil, invalid("password", "la contraseña debe tener al menos 8 caracteres")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&db.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, &ValidationError{Field: "email", Message: "ya existe un usuario con ese email"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := db.User{Email: in.Email, Name: strings.TrimSpace(in.Name), PasswordHash: string(hashed), Role: in.Role}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Update changes name, role and optionally the password.
func (s *UserService) Update(ctx context.Context, id uint, in UserInput) (*db.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Email = user.Email
	in.Role = strings.ToUpper(strings.TrimSpace(in.Role))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(in.Name)
	user.Role = in.Role
	if in.Password != "" {
		if len(in.Password) < 8 {
			return nil, invalid("password", "la contraseña debe tener al menos 8 caracteres")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&db.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
