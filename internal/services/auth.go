package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/stackadvisor-backend/internal/data/db"
	userrepo "github.com/yungbote/stackadvisor-backend/internal/data/repos/user"
	types "github.com/yungbote/stackadvisor-backend/internal/domain"
	"github.com/yungbote/stackadvisor-backend/internal/platform/apierr"
	"github.com/yungbote/stackadvisor-backend/internal/platform/ctxutil"
	"github.com/yungbote/stackadvisor-backend/internal/platform/dbctx"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgEmailNotVerified   = "Please verify your email before signing in"
	msgEmailTaken         = "User with this email already exists"
	msgUnauthorized       = "Unauthorized"

	purposeVerifyEmail = "verify_email"
)

type JWTClaims struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

type AuthConfig struct {
	JWTSecretKey    string
	TokenTTL        time.Duration
	BcryptCost      int
	AutoVerifyEmail bool
	VerificationTTL time.Duration
}

type RegisterInput struct {
	Name     string `validate:"min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"min=8"`
}

var registerMessages = map[string]string{
	"Name":     "Name must be at least 2 characters long",
	"Email":    "Invalid email address",
	"Password": "Password must be at least 8 characters long",
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

var loginMessages = map[string]string{
	"Email":    "Invalid email address",
	"Password": "Password is required",
}

type RegisterResult struct {
	User types.UserSummary
	// VerificationToken is set only when accounts are not auto-verified.
	VerificationToken string
}

type LoginResult struct {
	Token string
	User  types.UserSummary
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	VerifyEmail(ctx context.Context, token string) (*types.UserSummary, error)
	VerifyToken(tokenString string) (*ctxutil.RequestData, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetTokenTTL() time.Duration
}

type authService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo userrepo.UserRepo
	cfg      AuthConfig
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo userrepo.UserRepo, cfg AuthConfig) AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 7 * 24 * time.Hour
	}
	if cfg.VerificationTTL <= 0 {
		cfg.VerificationTTL = 24 * time.Hour
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = 12
	}
	return &authService{
		db:       db,
		log:      log.With("service", "AuthService"),
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (as *authService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = userrepo.NormalizeEmail(in.Email)
	if err := validateInput(in, registerMessages); err != nil {
		return nil, err
	}

	exists, err := as.userRepo.EmailExists(dbctx.Context{Ctx: ctx}, in.Email)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("check email: %w", err))
	}
	if exists {
		return nil, apierr.Validation(msgEmailTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), as.cfg.BcryptCost)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("hash password: %w", err))
	}
	hashStr := string(hash)

	user := &types.User{
		ID:           uuid.New(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: &hashStr,
	}
	if as.cfg.AutoVerifyEmail {
		now := time.Now().UTC()
		user.EmailVerifiedAt = &now
	}

	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, cErr := as.userRepo.Create(dbctx.Context{Ctx: ctx, Tx: tx}, []*types.User{user})
		return cErr
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apierr.Validation(msgEmailTaken)
		}
		return nil, apierr.Internal(fmt.Errorf("create user: %w", err))
	}

	res := &RegisterResult{User: user.Summary()}
	if !as.cfg.AutoVerifyEmail {
		tok, err := as.sign(user, purposeVerifyEmail, as.cfg.VerificationTTL)
		if err != nil {
			return nil, apierr.Internal(fmt.Errorf("sign verification token: %w", err))
		}
		res.VerificationToken = tok
		as.log.Info("Verification token issued", "user_id", user.ID.String())
	}
	return res, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	in := loginInput{Email: userrepo.NormalizeEmail(email), Password: password}
	if err := validateInput(in, loginMessages); err != nil {
		return nil, err
	}

	user, err := as.userRepo.GetByEmail(dbctx.Context{Ctx: ctx}, in.Email)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("load user: %w", err))
	}
	if user == nil {
		return nil, apierr.Unauthorized(msgInvalidCredentials)
	}
	if !user.Verified() {
		return nil, apierr.Unauthorized(msgEmailNotVerified)
	}
	if user.PasswordHash == nil || *user.PasswordHash == "" {
		return nil, apierr.Unauthorized(msgInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apierr.Unauthorized(msgInvalidCredentials)
	}

	tok, err := as.sign(user, "", as.cfg.TokenTTL)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("sign token: %w", err))
	}
	return &LoginResult{Token: tok, User: user.Summary()}, nil
}

func (as *authService) VerifyEmail(ctx context.Context, token string) (*types.UserSummary, error) {
	claims, err := as.parse(strings.TrimSpace(token))
	if err != nil || claims.Purpose != purposeVerifyEmail {
		return nil, apierr.Validation("Invalid or expired verification token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apierr.Validation("Invalid or expired verification token")
	}

	var out *types.UserSummary
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := as.userRepo.MarkEmailVerified(dbc, userID, time.Now().UTC()); err != nil {
			return err
		}
		u, err := as.userRepo.GetByID(dbc, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return gorm.ErrRecordNotFound
		}
		s := u.Summary()
		out = &s
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierr.Validation("Invalid or expired verification token")
	}
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("verify email: %w", err))
	}
	return out, nil
}

func (as *authService) VerifyToken(tokenString string) (*ctxutil.RequestData, error) {
	claims, err := as.parse(tokenString)
	if err != nil {
		return nil, apierr.Unauthorized(msgUnauthorized)
	}
	if claims.Purpose != "" {
		return nil, apierr.Unauthorized(msgUnauthorized)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return nil, apierr.Unauthorized(msgUnauthorized)
	}
	return &ctxutil.RequestData{UserID: userID, Email: claims.Email}, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	rd, err := as.VerifyToken(tokenString)
	if err != nil {
		return ctx, err
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetTokenTTL() time.Duration {
	return as.cfg.TokenTTL
}

func (as *authService) sign(user *types.User, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID:  user.ID.String(),
		Email:   user.Email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.cfg.JWTSecretKey))
}

func (as *authService) parse(tokenString string) (*JWTClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("empty token")
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.cfg.JWTSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}
	return claims, nil
}
