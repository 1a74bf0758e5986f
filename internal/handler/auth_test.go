package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/sportsconnect/api/internal/constants"
	apperrors "github.com/sportsconnect/api/internal/errors"
	"github.com/sportsconnect/api/internal/middleware"
	"github.com/sportsconnect/api/internal/model"
	"github.com/sportsconnect/api/internal/repository"
	"github.com/sportsconnect/api/internal/service"
	"github.com/sportsconnect/api/internal/validation"
	"github.com/sportsconnect/api/pkg/mailer"
)

// memoryStore is a minimal in-memory UserStore for handler tests.
type memoryStore struct {
	nextID uint
	users  map[uint]*model.User
}

func newMemoryStore() *memoryStore {
	return &memoryStore{nextID: 1, users: make(map[uint]*model.User)}
}

func (m *memoryStore) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperrors.ErrUserExists
		}
	}
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memoryStore) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *memoryStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return m.find(func(u *model.User) bool { return u.Email == email })
}

func (m *memoryStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	return m.find(func(u *model.User) bool { return u.Username == username })
}

func (m *memoryStore) GetByIdentifier(_ context.Context, identifier string) (*model.User, error) {
	return m.find(func(u *model.User) bool {
		return u.Username == identifier || u.Email == identifier
	})
}

func (m *memoryStore) find(match func(*model.User) bool) (*model.User, error) {
	for _, u := range m.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *memoryStore) List(_ context.Context, _ constants.ListParams) ([]model.User, int64, error) {
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (m *memoryStore) ListAll(_ context.Context) ([]model.User, error) {
	out, _, err := m.List(nil, constants.ListParams{})
	return out, err
}

func (m *memoryStore) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memoryStore) UpdateLastLogin(_ context.Context, id uint, at time.Time) error {
	if u, ok := m.users[id]; ok {
		u.LastLogin = at
		return nil
	}
	return apperrors.ErrUserNotFound
}

func (m *memoryStore) Delete(_ context.Context, id uint) error {
	if _, ok := m.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memoryStore) Stats(_ context.Context) (*repository.Stats, error) {
	return &repository.Stats{Total: int64(len(m.users))}, nil
}

// memoryOTPStore is a minimal in-memory OTPStore.
type memoryOTPStore struct {
	records map[string]*repository.OTPRecord
}

func newMemoryOTPStore() *memoryOTPStore {
	return &memoryOTPStore{records: make(map[string]*repository.OTPRecord)}
}

func (m *memoryOTPStore) Save(_ context.Context, email, otpHash string) error {
	m.records[email] = &repository.OTPRecord{
		OTPHash:   otpHash,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}
	return nil
}

func (m *memoryOTPStore) Get(_ context.Context, email string) (*repository.OTPRecord, error) {
	if r, ok := m.records[email]; ok {
		return r, nil
	}
	return nil, apperrors.ErrOTPExpired
}

func (m *memoryOTPStore) Delete(_ context.Context, email string) error {
	delete(m.records, email)
	return nil
}

type dropMailer struct{}

func (dropMailer) Send(mailer.Message) error { return nil }
func (dropMailer) Enqueue(mailer.Message)    {}

type testAPI struct {
	router *gin.Engine
	store  *memoryStore
	tokens *service.TokenService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterCustomValidators(); err != nil {
		t.Fatalf("register validators: %v", err)
	}

	store := newMemoryStore()
	tokens := service.NewTokenService("test-secret", time.Hour)
	otpSvc := service.NewOTPService(newMemoryOTPStore(), dropMailer{}, 5*time.Minute, true)
	authSvc := service.NewAuthService(store, tokens, dropMailer{})
	userSvc := service.NewUserService(store)

	authHandler := NewAuthHandler(authSvc, otpSvc)
	userHandler := NewUserHandler(userSvc)
	authMw := middleware.NewAuthMiddleware(tokens, store)

	router := gin.New()
	auth := router.Group("/api/auth")
	{
		auth.POST("/request-otp", authHandler.RequestOTP)
		auth.POST("/verify-otp", authHandler.VerifyOTP)
		auth.POST("/check-username", authHandler.CheckUsername)
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", authMw.RequireUser(), authHandler.Me)
	}
	users := router.Group("/api/users")
	{
		users.GET("/profile", authMw.RequireUser(), userHandler.GetProfile)
		users.PUT("/profile", authMw.RequireUser(), userHandler.UpdateProfile)
		users.GET("/:id", userHandler.GetPublicUser)
	}

	return &testAPI{router: router, store: store, tokens: tokens}
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

func (a *testAPI) seedUser(t *testing.T, username, email, password string) uint {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatal(err)
	}
	user := &model.User{
		FullName: "Seeded",
		Username: username,
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := a.store.Create(context.Background(), user); err != nil {
		t.Fatal(err)
	}
	return user.ID
}

func TestSignupFlow(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/auth/signup", map[string]interface{}{
		"fullName": "Alex Runner",
		"username": "alex",
		"email":    "alex@example.com",
		"password": "secret123",
		"sports":   []string{"running"},
	}, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Error("success should be true")
	}
	if body["token"] == "" || body["token"] == nil {
		t.Error("token missing")
	}
	user := body["user"].(map[string]interface{})
	if user["username"] != "alex" {
		t.Errorf("username = %v", user["username"])
	}
	if _, ok := user["password"]; ok {
		t.Error("response must not contain a password field")
	}
}

func TestSignup_DuplicateIs400(t *testing.T) {
	api := newTestAPI(t)
	api.seedUser(t, "alex", "alex@example.com", "secret123")

	w := api.do(t, http.MethodPost, "/api/auth/signup", map[string]interface{}{
		"fullName": "Other",
		"username": "alex",
		"email":    "other@example.com",
		"password": "secret123",
	}, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "User already exists with this email or username" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestSignup_ValidationError(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/auth/signup", map[string]interface{}{
		"username": "alex",
	}, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != false {
		t.Error("success should be false")
	}
}

func TestLoginAndMe(t *testing.T) {
	api := newTestAPI(t)
	api.seedUser(t, "alex", "alex@example.com", "secret123")

	w := api.do(t, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"identifier": "alex@example.com",
		"password":   "secret123",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}
	token := decodeBody(t, w)["token"].(string)

	w = api.do(t, http.MethodGet, "/api/auth/me", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d, body %s", w.Code, w.Body.String())
	}
	user := decodeBody(t, w)["user"].(map[string]interface{})
	if user["username"] != "alex" {
		t.Errorf("username = %v", user["username"])
	}
}

func TestLogin_BadCredentialsIs401(t *testing.T) {
	api := newTestAPI(t)
	api.seedUser(t, "alex", "alex@example.com", "secret123")

	w := api.do(t, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"identifier": "alex",
		"password":   "wrong",
	}, "")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if decodeBody(t, w)["message"] != "Invalid credentials" {
		t.Errorf("message = %v", decodeBody(t, w)["message"])
	}
}

func TestLogout(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/auth/logout", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if decodeBody(t, w)["success"] != true {
		t.Error("logout should always succeed")
	}
}

func TestCheckUsername(t *testing.T) {
	api := newTestAPI(t)
	api.seedUser(t, "taken", "taken@example.com", "secret123")

	tests := []struct {
		username   string
		wantStatus int
		wantMsg    string
	}{
		{"fresh", http.StatusOK, "Username is available"},
		{"taken", http.StatusBadRequest, "Username already taken"},
		{"ab", http.StatusBadRequest, "Username must be at least 3 characters"},
	}

	for _, tt := range tests {
		w := api.do(t, http.MethodPost, "/api/auth/check-username", map[string]interface{}{
			"username": tt.username,
		}, "")
		if w.Code != tt.wantStatus {
			t.Errorf("%q: status = %d, want %d", tt.username, w.Code, tt.wantStatus)
		}
		if got := decodeBody(t, w)["message"]; got != tt.wantMsg {
			t.Errorf("%q: message = %v, want %q", tt.username, got, tt.wantMsg)
		}
	}
}

func TestRequestAndVerifyOTP(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/auth/request-otp", map[string]interface{}{
		"email":    "alex@example.com",
		"fullName": "Alex",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("request-otp status = %d, body %s", w.Code, w.Body.String())
	}
	devOTP, _ := decodeBody(t, w)["devOTP"].(string)
	if devOTP == "" {
		t.Fatal("dev mode should echo the code")
	}

	w = api.do(t, http.MethodPost, "/api/auth/verify-otp", map[string]interface{}{
		"email": "alex@example.com",
		"otp":   devOTP,
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("verify-otp status = %d, body %s", w.Code, w.Body.String())
	}

	// Consumed: a replay fails with the contract message.
	w = api.do(t, http.MethodPost, "/api/auth/verify-otp", map[string]interface{}{
		"email": "alex@example.com",
		"otp":   devOTP,
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("replay status = %d, want 400", w.Code)
	}
	if decodeBody(t, w)["message"] != "OTP expired or not found" {
		t.Errorf("message = %v", decodeBody(t, w)["message"])
	}
}

func TestPublicProfileHidesContactDetails(t *testing.T) {
	api := newTestAPI(t)
	id := api.seedUser(t, "alex", "alex@example.com", "secret123")

	w := api.do(t, http.MethodGet, "/api/users/"+itoa(id), nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	user := decodeBody(t, w)["user"].(map[string]interface{})
	for _, forbidden := range []string{"email", "phone", "password"} {
		if _, ok := user[forbidden]; ok {
			t.Errorf("public profile must not expose %q", forbidden)
		}
	}
}

func TestUpdateProfile(t *testing.T) {
	api := newTestAPI(t)
	id := api.seedUser(t, "alex", "alex@example.com", "secret123")
	token, _ := api.tokens.GenerateUserToken(id)

	w := api.do(t, http.MethodPut, "/api/users/profile", map[string]interface{}{
		"bio": "marathon season",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	user := decodeBody(t, w)["user"].(map[string]interface{})
	if user["bio"] != "marathon season" {
		t.Errorf("bio = %v", user["bio"])
	}
	if user["username"] != "alex" {
		t.Errorf("untouched field changed: %v", user["username"])
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
