package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prudhvinik1/odoosync/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrMissingSubject     = errors.New("token has no subject")
)

type AuthConfig struct {
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string // bcrypt; takes precedence over AdminPassword
	JWTSecret         string
	JWTAlgorithm      string
	JWTExpiry         time.Duration
}

// AuthService issues and verifies bearer tokens for the single admin user.
type AuthService struct {
	cfg    AuthConfig
	method *jwt.SigningMethodHMAC
	now    func() time.Time
}

type LoginResponse struct {
	Token     string
	ExpiresAt time.Time
}

type TokenClaims struct {
	Subject   string
	TokenID   string
	ExpiresAt time.Time
}

func NewAuthService(cfg AuthConfig) (*AuthService, error) {
	method, ok := jwt.GetSigningMethod(cfg.JWTAlgorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.JWTAlgorithm)
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if cfg.JWTExpiry <= 0 {
		return nil, errors.New("jwt expiry must be positive")
	}

	return &AuthService{
		cfg:    cfg,
		method: method,
		now:    time.Now,
	}, nil
}

// Login checks the credentials against the configured admin pair and issues
// a token for that user.
func (s *AuthService) Login(username, password string) (*LoginResponse, error) {
	if !s.checkCredentials(username, password) {
		return nil, ErrInvalidCredentials
	}

	expiresAt := s.now().Add(s.cfg.JWTExpiry)
	token, err := s.generateToken(username, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *AuthService) checkCredentials(username, password string) bool {
	userOK := utils.EqualConstantTime(username, s.cfg.AdminUsername)

	var passOK bool
	if s.cfg.AdminPasswordHash != "" {
		passOK = utils.CheckPassword(s.cfg.AdminPasswordHash, password)
	} else {
		passOK = utils.EqualConstantTime(password, s.cfg.AdminPassword)
	}

	return userOK && passOK
}

func (s *AuthService) generateToken(subject string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"jti": uuid.New().String(),
		"exp": expiresAt.Unix(),
		"iat": s.now().Unix(),
	}

	token := jwt.NewWithClaims(s.method, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// VerifyToken checks signature, algorithm and expiry. A valid token without
// a subject yields ErrMissingSubject; anything else wrong is ErrInvalidToken.
func (s *AuthService) VerifyToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	if err != nil {
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return nil, ErrMissingSubject
	}

	result := &TokenClaims{Subject: subject}
	if jti, ok := claims["jti"].(string); ok {
		result.TokenID = jti
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		result.ExpiresAt = exp.Time
	}
	return result, nil
}
