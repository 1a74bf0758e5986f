package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sportsconnect/api/internal/constants"
	apperrors "github.com/sportsconnect/api/internal/errors"
	"github.com/sportsconnect/api/internal/model"
	"github.com/sportsconnect/api/internal/repository"
	"github.com/sportsconnect/api/pkg/mailer"
)

// fakeUserStore is an in-memory UserStore for service tests.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*model.User

	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: make(map[uint]*model.User)}
}

func (f *fakeUserStore) add(u model.User) *model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ID = f.nextID
	f.nextID++
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	f.users[u.ID] = &u
	return f.users[u.ID]
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperrors.ErrUserExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return f.find(func(u *model.User) bool { return u.Email == email })
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	return f.find(func(u *model.User) bool { return u.Username == username })
}

func (f *fakeUserStore) GetByIdentifier(_ context.Context, identifier string) (*model.User, error) {
	return f.find(func(u *model.User) bool {
		return u.Username == identifier || u.Email == identifier
	})
}

func (f *fakeUserStore) find(match func(*model.User) bool) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) List(_ context.Context, params constants.ListParams) ([]model.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []model.User
	for _, u := range f.users {
		if params.Search != "" {
			needle := strings.ToLower(params.Search)
			if !strings.Contains(strings.ToLower(u.FullName), needle) &&
				!strings.Contains(strings.ToLower(u.Username), needle) &&
				!strings.Contains(strings.ToLower(u.Email), needle) {
				continue
			}
		}
		switch params.Status {
		case constants.StatusActive:
			if !u.IsActive {
				continue
			}
		case constants.StatusInactive:
			if u.IsActive {
				continue
			}
		case constants.StatusOnline:
			if !u.IsOnline() {
				continue
			}
		}
		matched = append(matched, *u)
	}

	total := int64(len(matched))
	start := params.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeUserStore) ListAll(_ context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStore) Update(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, id uint, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.LastLogin = at
		return nil
	}
	return apperrors.ErrUserNotFound
}

func (f *fakeUserStore) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) Stats(_ context.Context) (*repository.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	stats := &repository.Stats{}
	for _, u := range f.users {
		stats.Total++
		if u.IsActive {
			stats.Active++
		}
		if u.IsOnline() {
			stats.Online++
		}
		if now.Sub(u.CreatedAt) <= 24*time.Hour {
			stats.NewToday++
		}
		if now.Sub(u.CreatedAt) <= 7*24*time.Hour {
			stats.NewInWeek++
		}
	}
	return stats, nil
}

// fakeOTPStore is an in-memory OTPStore.
type fakeOTPStore struct {
	mu      sync.Mutex
	records map[string]*repository.OTPRecord
	ttl     time.Duration

	saveErr error
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{
		records: make(map[string]*repository.OTPRecord),
		ttl:     5 * time.Minute,
	}
}

func (f *fakeOTPStore) Save(_ context.Context, email, otpHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.records[email] = &repository.OTPRecord{
		OTPHash:   otpHash,
		ExpiresAt: time.Now().Add(f.ttl),
	}
	return nil
}

func (f *fakeOTPStore) Get(_ context.Context, email string) (*repository.OTPRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if record, ok := f.records[email]; ok {
		copied := *record
		return &copied, nil
	}
	return nil, apperrors.ErrOTPExpired
}

func (f *fakeOTPStore) Delete(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, email)
	return nil
}

func (f *fakeOTPStore) has(email string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.records[email]
	return ok
}

// fakeMailer records messages instead of sending them.
type fakeMailer struct {
	mu       sync.Mutex
	sent     []mailer.Message
	enqueued []mailer.Message
	sendErr  error
}

func (f *fakeMailer) Send(msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) Enqueue(msg mailer.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enqueued = append(f.enqueued, msg)
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeMailer) enqueuedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.enqueued)
}

// toJSONMap round-trips a response through JSON to inspect the wire shape.
func toJSONMap(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}
