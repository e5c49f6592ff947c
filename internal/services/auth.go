package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	types "github.com/movalearn/movalearn-backend/internal/domain"
	"github.com/movalearn/movalearn-backend/internal/platform/env"
	"github.com/movalearn/movalearn-backend/internal/platform/logger"
	"github.com/movalearn/movalearn-backend/internal/repos"
)

// Claims is the payload carried by access tokens.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// TokenPair is what a successful register/login/refresh hands back.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*types.User, *TokenPair, error)
	Login(ctx context.Context, email, password string) (*types.User, *TokenPair, error)
	// Refresh rotates the pair: the presented refresh token is consumed
	// and a new pair is issued.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ParseAccessToken(tokenString string) (*Claims, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
}

type authService struct {
	db               *gorm.DB
	log              *logger.Logger
	userRepo         repos.UserRepo
	tokenRepo        repos.UserTokenRepo
	verificationRepo repos.EmailVerificationTokenRepo
	emailSvc         EmailService
	progressionSvc   ProgressionService

	jwtSecret           []byte
	accessTTL           time.Duration
	refreshTTL          time.Duration
	requireVerification bool
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	tokenRepo repos.UserTokenRepo,
	verificationRepo repos.EmailVerificationTokenRepo,
	emailSvc EmailService,
	progressionSvc ProgressionService,
) AuthService {
	l := log.With("service", "AuthService")
	return &authService{
		db:                  db,
		log:                 l,
		userRepo:            userRepo,
		tokenRepo:           tokenRepo,
		verificationRepo:    verificationRepo,
		emailSvc:            emailSvc,
		progressionSvc:      progressionSvc,
		jwtSecret:           []byte(env.Get("JWT_SECRET", "dev-secret-change-me", l)),
		accessTTL:           time.Duration(env.GetInt("JWT_ACCESS_TTL_MIN", 15, l)) * time.Minute,
		refreshTTL:          time.Duration(env.GetInt("JWT_REFRESH_TTL_HOURS", 720, l)) * time.Hour,
		requireVerification: env.GetBool("EMAIL_VERIFICATION_REQUIRED", false, l),
	}
}

func (as *authService) Register(ctx context.Context, email, password, name string) (*types.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if len(password) < 8 {
		return nil, nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}
	if strings.TrimSpace(name) == "" {
		return nil, nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hash),
		Name:     strings.TrimSpace(name),
		Role:     types.RoleUser,
		Level:    types.LevelA1,
	}
	if err := as.userRepo.Create(ctx, nil, user); err != nil {
		return nil, nil, fmt.Errorf("create user: %w", err)
	}
	as.log.Info("User registered", "user_id", user.ID, "email", user.Email)

	if as.requireVerification {
		if err := as.issueVerification(ctx, user); err != nil {
			as.log.Error("Verification email failed", "user_id", user.ID, "error", err)
		}
	}

	pair, err := as.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*types.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if as.requireVerification && !user.EmailVerified {
		return nil, nil, fmt.Errorf("%w: email is not verified", ErrForbidden)
	}

	pair, err := as.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	// Logging in counts as daily activity.
	if fresh, err := as.progressionSvc.RecordActivity(ctx, user.ID); err == nil {
		user = fresh
	} else {
		as.log.Warn("Activity record on login failed", "user_id", user.ID, "error", err)
	}

	as.log.Info("User logged in", "user_id", user.ID)
	return user, pair, nil
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrInvalidToken
	}

	stored, err := as.tokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("load refresh token: %w", err)
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = as.tokenRepo.DeleteByID(ctx, nil, stored.ID)
		return nil, ErrInvalidToken
	}

	user, err := as.userRepo.GetByID(ctx, nil, stored.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var pair *TokenPair
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.tokenRepo.DeleteByID(ctx, tx, stored.ID); err != nil {
			return err
		}
		var txErr error
		pair, txErr = as.issuePairTx(ctx, tx, user)
		return txErr
	})
	if err != nil {
		return nil, fmt.Errorf("rotate tokens: %w", err)
	}
	return pair, nil
}

func (as *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := as.tokenRepo.DeleteByUserID(ctx, nil, userID); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	as.log.Info("User logged out", "user_id", userID)
	return nil
}

func (as *authService) ParseAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return as.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (as *authService) VerifyEmail(ctx context.Context, token string) error {
	row, err := as.verificationRepo.Get(ctx, nil, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("load verification token: %w", err)
	}
	if time.Now().After(row.ExpiresAt) {
		return ErrInvalidToken
	}

	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.userRepo.UpdateFields(ctx, tx, row.UserID, map[string]any{"email_verified": true}); err != nil {
			return err
		}
		return as.verificationRepo.DeleteByUserID(ctx, tx, row.UserID)
	})
}

func (as *authService) ResendVerification(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		// Do not reveal whether the address is registered.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("load user: %w", err)
	}
	if user.EmailVerified {
		return nil
	}
	return as.issueVerification(ctx, user)
}

func (as *authService) issueVerification(ctx context.Context, user *types.User) error {
	token, err := randomToken()
	if err != nil {
		return err
	}
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.verificationRepo.DeleteByUserID(ctx, tx, user.ID); err != nil {
			return err
		}
		return as.verificationRepo.Create(ctx, tx, &types.EmailVerificationToken{
			Token:     token,
			UserID:    user.ID,
			ExpiresAt: time.Now().Add(24 * time.Hour),
		})
	})
	if err != nil {
		return fmt.Errorf("store verification token: %w", err)
	}
	return as.emailSvc.SendVerification(ctx, user.Email, user.Name, token)
}

func (as *authService) issuePair(ctx context.Context, user *types.User) (*TokenPair, error) {
	return as.issuePairTx(ctx, nil, user)
}

func (as *authService) issuePairTx(ctx context.Context, tx *gorm.DB, user *types.User) (*TokenPair, error) {
	now := time.Now()
	expires := now.Add(as.accessTTL)

	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refresh, err := randomToken()
	if err != nil {
		return nil, err
	}

	if err := as.tokenRepo.Create(ctx, tx, &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    now.Add(as.refreshTTL),
	}); err != nil {
		return nil, fmt.Errorf("persist refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expires,
	}, nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
