package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"go-stores-admin/internal/model"
	"go-stores-admin/internal/source"
	"go-stores-admin/pkg/validator"
)

var ErrEmailExists = errors.New("email already exists")

type UserService interface {
	CreateUser(req *CreateUserRequest, creatorID string) (*model.User, error)
	UpdateUser(userID uuid.UUID, req *UpdateUserRequest, updaterID string) (*model.User, error)
	DeleteUser(userID uuid.UUID) error
	GetAllUsers() ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
}

type CreateUserRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	FullName   string `json:"full_name" validate:"required"`
	Department string `json:"department"`
	RoleCode   string `json:"role_code" validate:"required"`
}

type UpdateUserRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	Password   *string `json:"password,omitempty" validate:"omitempty,min=6"` // Optional
	FullName   string  `json:"full_name" validate:"required"`
	Department string  `json:"department"`
	RoleCode   string  `json:"role_code" validate:"required"`
	IsActive   *bool   `json:"is_active"`
}

type userService struct {
	userRepo source.UserRepository
}

func NewUserService(userRepo source.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(req *CreateUserRequest, creatorID string) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	existing, _ := s.userRepo.FindByEmail(req.Email)
	if existing != nil {
		return nil, ErrEmailExists
	}

	if !model.ValidRole(req.RoleCode) {
		return nil, errors.New("role not found")
	}

	user := &model.User{
		Email:      req.Email,
		FullName:   req.FullName,
		Department: req.Department,
		RoleCode:   req.RoleCode,
		IsActive:   true,
	}
	user.CreatedBy = creatorID
	user.UpdatedBy = creatorID

	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(userID uuid.UUID, req *UpdateUserRequest, updaterID string) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.Email != user.Email {
		existing, _ := s.userRepo.FindByEmail(req.Email)
		if existing != nil {
			return nil, ErrEmailExists
		}
	}
	if !model.ValidRole(req.RoleCode) {
		return nil, errors.New("role not found")
	}

	user.Email = req.Email
	user.FullName = req.FullName
	user.Department = req.Department
	user.RoleCode = req.RoleCode
	user.UpdatedBy = updaterID
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(userID uuid.UUID) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return ErrUserNotFound
	}
	return s.userRepo.Delete(userID)
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	resp := user.ToResponse()
	return &resp, nil
}
