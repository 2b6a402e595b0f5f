package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"todoapp/dto"
	"todoapp/model"
)

func newSigninRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("JWT_REFRESH_SECRET_KEY", "refresh-secret")

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.RefreshToken{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	router := gin.New()
	SignInController(router, db)
	return router, db
}

func postSignin(t *testing.T, router *gin.Engine, email, password string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(dto.SigninRequest{Email: email, Password: password})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/auth/signin", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSigninIssuesTokens(t *testing.T) {
	router, db := newSigninRouter(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := model.User{
		UserID:   "user-1",
		Name:     "alice",
		Email:    "alice@example.com",
		Password: string(hash),
		Role:     "user",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	w := postSignin(t, router, "alice@example.com", "secret")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var response struct {
		Token dto.TokenResponse `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.Token.AccessToken == "" || response.Token.RefreshToken == "" {
		t.Fatalf("empty token pair: %+v", response.Token)
	}

	if w := postSignin(t, router, "alice@example.com", "wrong"); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d, want 401", w.Code)
	}
}

func TestSigninRejectsUnknownEmail(t *testing.T) {
	router, _ := newSigninRouter(t)

	w := postSignin(t, router, "ghost@example.com", "secret")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

// A broken database is a server problem, not bad credentials.
func TestSigninReportsStorageFailure(t *testing.T) {
	router, db := newSigninRouter(t)

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	w := postSignin(t, router, "alice@example.com", "secret")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}
