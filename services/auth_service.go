package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Dosada05/campus-tournaments/utils"
)

// CredentialVerifier: единственная точка сравнения учётных данных администратора.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

// StaticCredentialVerifier сравнивает с одной парой логин/пароль из конфигурации.
type StaticCredentialVerifier struct {
	username     []byte
	passwordHash string
}

func NewStaticCredentialVerifier(username, password string, cost int) (*StaticCredentialVerifier, error) {
	if username == "" || password == "" {
		return nil, errors.New("admin username and password must not be empty")
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return nil, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}
	return &StaticCredentialVerifier{username: []byte(username), passwordHash: hash}, nil
}

func (v *StaticCredentialVerifier) Verify(username, password string) bool {
	// Обе проверки выполняются всегда.
	userOK := subtle.ConstantTimeCompare([]byte(username), v.username) == 1
	passOK := utils.CheckPasswordHash(password, v.passwordHash)
	return userOK && passOK
}

// AdminSessionService выдаёт и проверяет флаг "администратор разблокирован".
// Флаг не содержит личности и не является границей безопасности.
type AdminSessionService interface {
	Unlock(ctx context.Context, username, password string) (string, error)
	IsUnlocked(token string) bool
}

type adminClaims struct {
	AdminUnlocked bool `json:"admin_unlocked"`
	jwt.RegisteredClaims
}

type adminSessionService struct {
	verifier CredentialVerifier
	secret   []byte
	ttl      time.Duration
	now      Clock
}

// NewAdminSessionService: ttl == 0 означает флаг без срока действия.
func NewAdminSessionService(verifier CredentialVerifier, secret string, ttl time.Duration, clock Clock) AdminSessionService {
	return &adminSessionService{
		verifier: verifier,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      clockOrNow(clock),
	}
}

func (s *adminSessionService) Unlock(_ context.Context, username, password string) (string, error) {
	if !s.verifier.Verify(username, password) {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := adminClaims{
		AdminUnlocked: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin session: %w", err)
	}
	return token, nil
}

func (s *adminSessionService) IsUnlocked(token string) bool {
	if token == "" {
		return false
	}

	claims := &adminClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !parsed.Valid {
		return false
	}

	// Сроки сверяются с теми же часами, которыми они были проставлены в Unlock.
	now := s.now()
	if !claims.VerifyExpiresAt(now, false) || !claims.VerifyIssuedAt(now, false) {
		return false
	}
	return claims.AdminUnlocked
}
