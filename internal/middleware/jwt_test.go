package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/guard"
	"github.com/collegecoursera/api/internal/middleware"
	"github.com/collegecoursera/api/internal/models"
	"github.com/collegecoursera/api/internal/repository"
)

const testSecret = "test-secret"

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.UserInterest{}))
	return db
}

func signToken(t *testing.T, userID uint) string {
	t.Helper()

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newProtectedApp(db *gorm.DB) (*fiber.App, *guard.Identity) {
	var captured guard.Identity

	app := fiber.New()
	app.Get("/protected", middleware.JWTProtected(testSecret, repository.NewUserRepository(db)), func(c *fiber.Ctx) error {
		captured = middleware.IdentityFromContext(c)
		return c.SendStatus(fiber.StatusOK)
	})
	return app, &captured
}

func TestJWTProtectedResolvesLiveUser(t *testing.T) {
	db := openTestDB(t)
	user := models.User{Email: "ada@test.edu", PasswordHash: "x", FullName: "Ada Lovelace"}
	require.NoError(t, db.Create(&user).Error)

	token := signToken(t, user.ID)

	// Role changes after token issuance are visible on the next request.
	require.NoError(t, db.Model(&user).Update("is_admin", true).Error)

	app, captured := newProtectedApp(db)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, user.ID, captured.UserID)
	require.Equal(t, "ada@test.edu", captured.Email)
	require.True(t, captured.IsAdmin)
}

func TestJWTProtectedRejectsMissingHeader(t *testing.T) {
	app, _ := newProtectedApp(openTestDB(t))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsBadToken(t *testing.T) {
	app, _ := newProtectedApp(openTestDB(t))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsWrongSecret(t *testing.T) {
	db := openTestDB(t)
	user := models.User{Email: "ada@test.edu", PasswordHash: "x", FullName: "Ada Lovelace"}
	require.NoError(t, db.Create(&user).Error)

	now := time.Now()
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("another-secret"))
	require.NoError(t, err)

	app, _ := newProtectedApp(db)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsDeletedUser(t *testing.T) {
	db := openTestDB(t)
	user := models.User{Email: "ada@test.edu", PasswordHash: "x", FullName: "Ada Lovelace"}
	require.NoError(t, db.Create(&user).Error)

	token := signToken(t, user.ID)
	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)

	app, _ := newProtectedApp(db)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
