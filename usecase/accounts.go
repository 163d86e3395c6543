package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kacchi/model"
	"kacchi/repository"
	"kacchi/services"
	"kacchi/utils"

	"github.com/charmbracelet/log"
)

type TokenIssuer interface {
	Generate(userID string) (string, error)
}

type AccountsService struct {
	Users    repository.UserRepository
	Profiles repository.ProfileRepository
	Tokens   TokenIssuer
	Limiter  services.LoginLimiter
}

func NewAccountsService(store *repository.Store, tokens TokenIssuer, limiter services.LoginLimiter) *AccountsService {
	return &AccountsService{
		Users:    store.Users,
		Profiles: store.Profiles,
		Tokens:   tokens,
		Limiter:  limiter,
	}
}

func (svc *AccountsService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if strings.TrimSpace(req.Name) == "" || email == "" || req.Password == "" {
		return nil, model.NewValidationError("Please provide name, email and password")
	}
	if !utils.ValidatePassword(req.Password) {
		return nil, model.NewValidationError("Password must be at least 6 characters and contain a number and a special character")
	}

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	ts := now()
	user := &model.User{
		ID:           utils.NewID(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if err := svc.Users.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrConflict) {
			utils.TrackAuthAttempt("failure", "register")
			return nil, model.NewValidationError("User already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if _, err := svc.Profiles.GetOrCreate(ctx, user.ID); err != nil {
		log.Warn("failed to create profile", "user", user.ID, "err", err)
	}

	token, err := svc.Tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	utils.TrackAuthAttempt("success", "register")
	return &model.AuthResult{User: user, Token: token}, nil
}

// Login checks credentials and records the device from userAgent.
func (svc *AccountsService) Login(ctx context.Context, req model.LoginRequest, userAgent string) (*model.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := svc.Limiter.Check(ctx, email); err != nil {
		if errors.Is(err, model.ErrTooManyAttempts) {
			utils.TrackAuthAttempt("throttled", "login")
			return nil, err
		}
		log.Warn("login limiter unavailable", "err", err)
	}

	user, err := svc.Users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !services.ComparePasswords(user.PasswordHash, req.Password) {
		if err := svc.Limiter.RecordFailure(ctx, email); err != nil {
			log.Warn("failed to record login failure", "err", err)
		}
		utils.TrackAuthAttempt("failure", "login")
		return nil, model.ErrInvalidCredentials
	}

	if err := svc.Limiter.Reset(ctx, email); err != nil {
		log.Warn("failed to reset login attempts", "err", err)
	}

	at := now()
	device := utils.DeviceName(userAgent)
	if err := svc.Users.RecordLogin(ctx, user.ID, at, device); err != nil {
		log.Warn("failed to record login", "user", user.ID, "err", err)
	} else {
		user.LastLoginAt = at
		user.LastLoginDevice = device
	}

	token, err := svc.Tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	utils.TrackAuthAttempt("success", "login")
	return &model.AuthResult{User: user, Token: token}, nil
}
