package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"vagsociety_backend/internals/features/admins/auth/model"
	"vagsociety_backend/internals/features/admins/auth/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	CookieName     = "admin_token"
	PasswordCost   = 12
	defaultTTL     = 12 * time.Hour
	minPasswordLen = 6
)

var (
	ErrInvalidCredentials = errors.New("email atau password salah")
	ErrInvalidToken       = errors.New("token tidak valid")
	ErrTokenRevoked       = errors.New("token sudah dicabut")
	ErrMissingSecret      = errors.New("JWT_SECRET belum diset")
	ErrWeakPassword       = errors.New("password minimal 6 karakter")
)

var dummyHash = sync.OnceValue(func() []byte {
	b, _ := bcrypt.GenerateFromPassword([]byte("vagsociety-dummy"), PasswordCost)
	return b
})

type Service struct {
	DB     *gorm.DB
	Secret string
	TTL    time.Duration
	now    func() time.Time
}

func New(db *gorm.DB, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Service{DB: db, Secret: strings.TrimSpace(secret), TTL: ttl, now: func() time.Time { return time.Now().UTC() }}
}

// Claims hasil verifikasi token admin.
type Claims struct {
	AdminID   uuid.UUID
	Email     string
	ExpiresAt time.Time
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	Admin     model.AdminUserModel
}

// Login bcrypt compare lalu terbitkan JWT HS256. Email tidak dikenal dan
// password salah menghasilkan error yang sama.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	admin, err := repository.FindAdminByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// tetap hitung bcrypt supaya timing mirip
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.AdminUserPasswordHash), []byte(password)); err != nil {
		log.Printf("[WARN] login admin gagal: %s", admin.AdminUserEmail)
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.IssueToken(admin.AdminUserID, admin.AdminUserEmail)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] admin login: %s", admin.AdminUserEmail)
	return &Session{Token: token, ExpiresAt: exp, Admin: *admin}, nil
}

func (s *Service) IssueToken(id uuid.UUID, email string) (string, time.Time, error) {
	if s.Secret == "" {
		return "", time.Time{}, ErrMissingSecret
	}
	now := s.now()
	exp := now.Add(s.TTL)
	claims := jwt.MapClaims{
		"sub":   id.String(),
		"email": email,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, time.Unix(exp.Unix(), 0).UTC(), nil
}

// ParseToken verifikasi signature + exp, tanpa cek blacklist.
func (s *Service) ParseToken(raw string) (*Claims, error) {
	if s.Secret == "" {
		return nil, ErrMissingSecret
	}
	tok, err := jwt.Parse(strings.TrimSpace(raw), func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("signing method tidak didukung: %v", t.Header["alg"])
		}
		return []byte(s.Secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := mc["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}
	email, _ := mc["email"].(string)
	out := &Claims{AdminID: id, Email: email}
	if exp, ok := mc["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	} else {
		return nil, ErrInvalidToken
	}
	return out, nil
}

// Verify = ParseToken + cek blacklist. Dipakai middleware AuthAdmin.
func (s *Service) Verify(ctx context.Context, raw string) (*Claims, error) {
	claims, err := s.ParseToken(raw)
	if err != nil {
		return nil, err
	}
	black, err := repository.IsTokenBlacklisted(ctx, s.DB, TokenHash(raw))
	if err != nil {
		return nil, err
	}
	if black {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Logout mencabut token sampai exp-nya. Token invalid diabaikan.
func (s *Service) Logout(ctx context.Context, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	claims, err := s.ParseToken(raw)
	if err != nil {
		return nil
	}
	return repository.BlacklistToken(ctx, s.DB, TokenHash(raw), claims.ExpiresAt)
}

func (s *Service) Me(ctx context.Context, id uuid.UUID) (*model.AdminUserModel, error) {
	return repository.FindAdminByID(ctx, s.DB, id)
}

func TokenHash(raw string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(raw)))
	return hex.EncodeToString(sum[:])
}

func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLen {
		return "", ErrWeakPassword
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// EnsureAdmin upsert admin (dipakai seeder).
func EnsureAdmin(ctx context.Context, db *gorm.DB, email, password, name string) (*model.AdminUserModel, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	a := &model.AdminUserModel{
		AdminUserEmail:        email,
		AdminUserName:         strings.TrimSpace(name),
		AdminUserPasswordHash: hash,
	}
	if err := repository.UpsertAdmin(ctx, db, a); err != nil {
		return nil, err
	}
	return repository.FindAdminByEmail(ctx, db, email)
}
