package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
	"github.com/kabisa/ebmbridge/internal/auth/domain"
	"github.com/kabisa/ebmbridge/internal/auth/password"
	"github.com/kabisa/ebmbridge/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const minPasswordLength = 8

type Params struct {
	fx.In

	Log   *zap.Logger
	Cfg   config.Config
	Repo  domain.Repository
	GenID *snowflake.Node
}

type Service struct {
	log      *zap.Logger
	repo     domain.Repository
	genID    *snowflake.Node
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func New(p Params) domain.Service {
	return &Service{
		log:      p.Log.Named("auth.service"),
		repo:     p.Repo,
		genID:    p.GenID,
		secret:   []byte(p.Cfg.AuthJWTSecret),
		tokenTTL: p.Cfg.AuthTokenTTL,
		now:      time.Now,
	}
}

func (s *Service) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if len(strings.TrimSpace(req.Password)) < minPasswordLength {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = defaultDisplayName(email)
	}
	user := &domain.User{
		ID:                  s.genID.Generate(),
		Email:               email,
		DisplayName:         displayName,
		PasswordHash:        &hashed,
		LastPasswordChanged: &now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == nil || !password.Verify(req.Password, *user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResult{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

func (s *Service) Verify(raw string) (*domain.Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, domain.ErrInvalidToken
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	id, err := snowflake.ParseString(sub)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	return &domain.Claims{UserID: id, Email: email}, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID string, newPassword string) error {
	if len(strings.TrimSpace(newPassword)) < minPasswordLength {
		return domain.ErrInvalidCredentials
	}

	id, err := snowflake.ParseString(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	return s.repo.UpdateFields(ctx, id, map[string]any{
		"password_hash":         hashed,
		"last_password_changed": &now,
		"is_default":            false,
		"updated_at":            now,
	})
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(addr.Address)), nil
}

func defaultDisplayName(email string) string {
	if name, _, found := strings.Cut(email, "@"); found && strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name)
	}
	return email
}
