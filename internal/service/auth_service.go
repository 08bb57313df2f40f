package service

import (
	"errors"

	"github.com/google/uuid"

	"go-stores-admin/internal/model"
	"go-stores-admin/internal/source"
	"go-stores-admin/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	ResetPassword(email, oldPassword, newPassword string) error
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
	Heartbeat(userID uuid.UUID) error
}

type LoginResponse struct {
	Token      string             `json:"token"`
	User       model.UserResponse `json:"user"`
	Privileges []string           `json:"privileges"` // Flat privileges array for easy checking
}

type TokenValidationResponse struct {
	User       model.UserResponse `json:"user"`
	Privileges []string           `json:"privileges"`
}

type authService struct {
	userRepo source.UserRepository
	hub      Broadcaster
}

func NewAuthService(userRepo source.UserRepository, hub Broadcaster) AuthService {
	return &authService{userRepo: userRepo, hub: hub}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// Single session: rotate the token version so older tokens die.
	newTokenVersion := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(user.ID, newTokenVersion); err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName, user.RoleCode, user.Privileges(), newTokenVersion)
	if err != nil {
		return nil, err
	}

	publish(s.hub, "user_logged_in", map[string]interface{}{
		"user_id": user.ID.String(),
		"name":    user.FullName,
	})

	return &LoginResponse{
		Token:      token,
		User:       user.ToResponse(),
		Privileges: user.Privileges(),
	}, nil
}

func (s *authService) ResetPassword(email, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}
	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(user.ID, user.Password)
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, jwt.ErrInvalidToken
	}
	return &TokenValidationResponse{
		User:       user.ToResponse(),
		Privileges: user.Privileges(),
	}, nil
}

func (s *authService) Heartbeat(userID uuid.UUID) error {
	return s.userRepo.UpdateLastSeen(userID)
}
