package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/studybuddy-app/studybuddy-backend/internal/domain"
	"github.com/studybuddy-app/studybuddy-backend/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	codeTTL    = 10 * time.Minute
	codeDigits = 6

	sessionKeyPrefix = "session:"
	codeKeyPrefix    = "signin_code:"
)

// AuthUseCase implements email+password and one-time-code sign-in.
// Sign-in codes and the session allowlist live in Redis so logout and
// code expiry work across instances.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	redis        *redis.Client
	jwtSecret    string
	accessExpiry time.Duration
	logger       *zap.Logger
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	redisClient *redis.Client,
	jwtSecret string,
	accessExpiryMin int,
	logger *zap.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		redis:        redisClient,
		jwtSecret:    jwtSecret,
		accessExpiry: time.Duration(accessExpiryMin) * time.Minute,
		logger:       logger,
	}
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
	IsNewUser bool         `json:"is_new_user"`
}

// Register creates a user with a bcrypt-hashed password and signs
// them in.
func (uc *AuthUseCase) Register(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = normalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, expiresAt, err := uc.createSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, ExpiresAt: expiresAt, User: user, IsNewUser: true}, nil
}

// Login verifies the password and issues a session token.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := uc.createSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// RequestCode issues a short-lived one-time sign-in code for the
// email. Delivery is a mailer concern outside this service; the code
// is only logged at debug level for development.
func (uc *AuthUseCase) RequestCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	code, err := generateCode(codeDigits)
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	if err := uc.redis.Set(ctx, codeKeyPrefix+email, code, codeTTL).Err(); err != nil {
		return fmt.Errorf("failed to store sign-in code: %w", err)
	}

	uc.logger.Debug("issued sign-in code",
		zap.String("email", email),
		zap.String("code", code),
	)
	return nil
}

// VerifyCode exchanges a valid code for a session, creating the user
// on first sign-in.
func (uc *AuthUseCase) VerifyCode(ctx context.Context, email, code string) (*AuthResponse, error) {
	email = normalizeEmail(email)

	stored, err := uc.redis.GetDel(ctx, codeKeyPrefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrInvalidCode
		}
		return nil, fmt.Errorf("failed to read sign-in code: %w", err)
	}
	if stored != code {
		return nil, domain.ErrInvalidCode
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	isNewUser := false
	if errors.Is(err, domain.ErrUserNotFound) {
		// Code sign-in may create the account; such users have no
		// password until they set one.
		user = &domain.User{ID: uuid.New(), Email: email}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		isNewUser = true
	} else if err != nil {
		return nil, err
	}

	token, expiresAt, err := uc.createSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, ExpiresAt: expiresAt, User: user, IsNewUser: isNewUser}, nil
}

// ValidateToken checks signature, expiry and the session allowlist,
// returning the authenticated user ID.
func (uc *AuthUseCase) ValidateToken(ctx context.Context, tokenString string) (uuid.UUID, error) {
	claims, err := uc.parseClaims(tokenString)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidToken
	}

	if err := uc.redis.Get(ctx, sessionKeyPrefix+claims.ID).Err(); err != nil {
		return uuid.Nil, domain.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidToken
	}
	return userID, nil
}

// Logout revokes the session behind the token.
func (uc *AuthUseCase) Logout(ctx context.Context, tokenString string) error {
	claims, err := uc.parseClaims(tokenString)
	if err != nil {
		return domain.ErrInvalidToken
	}
	return uc.redis.Del(ctx, sessionKeyPrefix+claims.ID).Err()
}

// GetUser returns the account for an authenticated user ID.
func (uc *AuthUseCase) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *AuthUseCase) createSession(ctx context.Context, userID uuid.UUID) (string, time.Time, error) {
	expiresAt := time.Now().Add(uc.accessExpiry)
	jti := uuid.NewString()

	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := uc.redis.Set(ctx, sessionKeyPrefix+jti, userID.String(), uc.accessExpiry).Err(); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to store session: %w", err)
	}

	return token, expiresAt, nil
}

func (uc *AuthUseCase) parseClaims(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(uc.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func generateCode(digits int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}
