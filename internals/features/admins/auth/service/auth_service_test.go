package service

import (
	"context"
	"testing"
	"time"

	"vagsociety_backend/internals/databases/dbtest"
	"vagsociety_backend/internals/features/admins/auth/model"
	"vagsociety_backend/internals/features/admins/auth/scheduler"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "rahasia-test"

func TestLoginAndVerify(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	svc := New(db, testSecret, time.Hour)

	admin, err := EnsureAdmin(ctx, db, "Admin@VagSociety.rs", "tajna123", "Admin")
	require.NoError(t, err)
	assert.Equal(t, "admin@vagsociety.rs", admin.AdminUserEmail)
	assert.NotEqual(t, "tajna123", admin.AdminUserPasswordHash)

	_, err = svc.Login(ctx, "admin@vagsociety.rs", "pogresno")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nema@vagsociety.rs", "tajna123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	sess, err := svc.Login(ctx, "admin@vagsociety.rs", "tajna123")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, 5*time.Second)

	claims, err := svc.Verify(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.AdminUserID, claims.AdminID)
	assert.Equal(t, "admin@vagsociety.rs", claims.Email)

	require.NoError(t, svc.Logout(ctx, sess.Token))
	_, err = svc.Verify(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// logout dua kali tidak error
	require.NoError(t, svc.Logout(ctx, sess.Token))
}

func TestEnsureAdminUpdatesPassword(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	svc := New(db, testSecret, time.Hour)

	first, err := EnsureAdmin(ctx, db, "admin@vagsociety.rs", "staralozinka", "Admin")
	require.NoError(t, err)
	second, err := EnsureAdmin(ctx, db, "admin@vagsociety.rs", "novalozinka", "Glavni admin")
	require.NoError(t, err)
	assert.Equal(t, first.AdminUserID, second.AdminUserID)
	assert.Equal(t, "Glavni admin", second.AdminUserName)

	var n int64
	require.NoError(t, db.Model(&model.AdminUserModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	_, err = svc.Login(ctx, "admin@vagsociety.rs", "staralozinka")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "admin@vagsociety.rs", "novalozinka")
	assert.NoError(t, err)

	_, err = EnsureAdmin(ctx, db, "x@vagsociety.rs", "123", "")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestParseTokenRejects(t *testing.T) {
	svc := New(dbtest.Open(t), testSecret, time.Hour)

	// secret lain
	other := New(nil, "secret-lain", time.Hour)
	tok, _, err := other.IssueToken(uuid.New(), "a@b.rs")
	require.NoError(t, err)
	_, err = svc.ParseToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// expired
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, _, err = svc.IssueToken(uuid.New(), "a@b.rs")
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Now().UTC() }
	_, err = svc.ParseToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// alg none
	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": uuid.NewString(), "exp": time.Now().Add(time.Hour).Unix()})
	raw, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ParseToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// sub bukan uuid
	bad := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "admin", "exp": time.Now().Add(time.Hour).Unix()})
	raw, err = bad.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.ParseToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = New(nil, "", time.Hour).IssueToken(uuid.New(), "a@b.rs")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestBlacklistCleanup(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	require.NoError(t, db.Create(&[]model.AdminTokenBlacklistModel{
		{TokenHash: TokenHash("lama"), ExpiredAt: time.Now().UTC().Add(-time.Hour)},
		{TokenHash: TokenHash("baru"), ExpiredAt: time.Now().UTC().Add(time.Hour)},
	}).Error)

	assert.EqualValues(t, 1, scheduler.RunBlacklistCleanup(ctx, db))

	var left []model.AdminTokenBlacklistModel
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, TokenHash("baru"), left[0].TokenHash)
}
