package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kisxo/SikshaSathi-Backend/adapter/out/persistence"
	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/pkg/apperr"

	"golang.org/x/oauth2"
)

type tokenUpdate struct {
	userID      int64
	accessToken string
	expiry      time.Time
}

type fakeAccounts struct {
	account   *domain.GoogleAccount
	updates   []tokenUpdate
	upserts   []*domain.GoogleAccount
	upsertErr error
}

func (f *fakeAccounts) Upsert(ctx context.Context, account *domain.GoogleAccount) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, account)
	return nil
}

func (f *fakeAccounts) GetByUserID(ctx context.Context, userID int64) (*domain.GoogleAccount, error) {
	if f.account == nil || f.account.UserID != userID {
		return nil, persistence.ErrNotFound
	}
	copied := *f.account
	return &copied, nil
}

func (f *fakeAccounts) GetByEmail(ctx context.Context, googleEmail string) (*domain.GoogleAccount, error) {
	if f.account == nil || f.account.GoogleEmail != googleEmail {
		return nil, persistence.ErrNotFound
	}
	copied := *f.account
	return &copied, nil
}

func (f *fakeAccounts) UpdateTokens(ctx context.Context, userID int64, accessToken string, expiry time.Time) error {
	f.updates = append(f.updates, tokenUpdate{userID: userID, accessToken: accessToken, expiry: expiry})
	return nil
}

type fakeUsers struct {
	users map[string]*domain.User
}

func (f *fakeUsers) Create(ctx context.Context, user *domain.User) error { return nil }
func (f *fakeUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, persistence.ErrNotFound
}
func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, persistence.ErrNotFound
}
func (f *fakeUsers) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return nil, nil
}
func (f *fakeUsers) Update(ctx context.Context, user *domain.User) error { return nil }
func (f *fakeUsers) Delete(ctx context.Context, id int64) error          { return nil }

func newTestGoogleService(accounts *fakeAccounts, users *fakeUsers, tokenURL string, now time.Time) *GoogleService {
	svc := NewGoogleService(accounts, users, GoogleConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/callback",
	})
	svc.config.Endpoint = oauth2.Endpoint{TokenURL: tokenURL, AuthURL: tokenURL}
	svc.now = func() time.Time { return now }
	return svc
}

func TestGetValidAccessTokenFresh(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	accounts := &fakeAccounts{account: &domain.GoogleAccount{
		UserID:      1,
		AccessToken: "fresh-token",
		TokenExpiry: now.Add(time.Hour),
	}}
	svc := newTestGoogleService(accounts, &fakeUsers{}, server.URL+"/token", now)

	token, err := svc.GetValidAccessToken(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetValidAccessToken: %v", err)
	}
	if token != "fresh-token" {
		t.Errorf("expected stored token, got %q", token)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Error("fresh token must not trigger a network call")
	}
	if len(accounts.updates) != 0 {
		t.Error("fresh token must not update the stored row")
	}
}

func TestGetValidAccessTokenRefreshesExpired(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"access_token": "refreshed-token", "token_type": "Bearer", "expires_in": 1800}`)
	}))
	defer server.Close()

	accounts := &fakeAccounts{account: &domain.GoogleAccount{
		UserID:       1,
		AccessToken:  "stale-token",
		RefreshToken: "refresh-token",
		TokenExpiry:  now.Add(-time.Minute),
	}}
	svc := newTestGoogleService(accounts, &fakeUsers{}, server.URL+"/token", now)

	token, err := svc.GetValidAccessToken(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetValidAccessToken: %v", err)
	}
	if token != "refreshed-token" {
		t.Errorf("expected refreshed token, got %q", token)
	}
	if len(accounts.updates) != 1 {
		t.Fatalf("expected one token update, got %d", len(accounts.updates))
	}
	update := accounts.updates[0]
	if update.accessToken != "refreshed-token" {
		t.Errorf("update carries wrong token %q", update.accessToken)
	}
	if update.expiry.Location() != time.UTC {
		t.Error("stored expiry must be UTC")
	}
	if update.expiry.Before(now.Add(25*time.Minute)) || update.expiry.After(now.Add(35*time.Minute)) {
		t.Errorf("expiry %v not near 30 minutes out", update.expiry)
	}
}

func TestGetValidAccessTokenGraceWindow(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"access_token": "refreshed-token", "token_type": "Bearer", "expires_in": 3600}`)
	}))
	defer server.Close()

	// 30 seconds of life left is inside the grace window.
	accounts := &fakeAccounts{account: &domain.GoogleAccount{
		UserID:       1,
		AccessToken:  "nearly-dead",
		RefreshToken: "refresh-token",
		TokenExpiry:  now.Add(30 * time.Second),
	}}
	svc := newTestGoogleService(accounts, &fakeUsers{}, server.URL+"/token", now)

	token, err := svc.GetValidAccessToken(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetValidAccessToken: %v", err)
	}
	if token != "refreshed-token" {
		t.Errorf("expected a refresh inside the grace window, got %q", token)
	}
}

func TestGetValidAccessTokenRefreshFailure(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error": "invalid_grant"}`)
	}))
	defer server.Close()

	accounts := &fakeAccounts{account: &domain.GoogleAccount{
		UserID:       1,
		AccessToken:  "stale-token",
		RefreshToken: "revoked",
		TokenExpiry:  now.Add(-time.Minute),
	}}
	svc := newTestGoogleService(accounts, &fakeUsers{}, server.URL+"/token", now)

	_, err := svc.GetValidAccessToken(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperr.IsCode(err, apperr.CodeRefreshFailed) {
		t.Errorf("expected refresh failure, got %v", err)
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		body, _ := appErr.Details["provider_error"].(string)
		if body == "" {
			t.Error("expected provider response body in error details")
		}
	}
	if len(accounts.updates) != 0 {
		t.Error("failed refresh must not touch the stored row")
	}
}

func TestGetValidAccessTokenMissingRefreshToken(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	accounts := &fakeAccounts{account: &domain.GoogleAccount{
		UserID:      1,
		AccessToken: "stale-token",
		TokenExpiry: now.Add(-time.Minute),
	}}
	svc := newTestGoogleService(accounts, &fakeUsers{}, "http://localhost/token", now)

	_, err := svc.GetValidAccessToken(context.Background(), 1)
	if !apperr.IsCode(err, apperr.CodeMissingRefreshToken) {
		t.Errorf("expected missing refresh token error, got %v", err)
	}
}

func TestGetValidAccessTokenNotLinked(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestGoogleService(&fakeAccounts{}, &fakeUsers{}, "http://localhost/token", now)

	_, err := svc.GetValidAccessToken(context.Background(), 99)
	if !apperr.IsCode(err, apperr.CodeNotLinked) {
		t.Errorf("expected not linked error, got %v", err)
	}
	if apperr.GetHTTPStatus(err) != http.StatusNotFound {
		t.Errorf("not linked must read as 404, got %d", apperr.GetHTTPStatus(err))
	}
}

func TestGetValidAccessTokenDefaultLifetime(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"access_token": "refreshed-token", "token_type": "Bearer"}`)
	}))
	defer server.Close()

	accounts := &fakeAccounts{account: &domain.GoogleAccount{
		UserID:       1,
		AccessToken:  "stale-token",
		RefreshToken: "refresh-token",
		TokenExpiry:  now.Add(-time.Minute),
	}}
	svc := newTestGoogleService(accounts, &fakeUsers{}, server.URL+"/token", now)

	if _, err := svc.GetValidAccessToken(context.Background(), 1); err != nil {
		t.Fatalf("GetValidAccessToken: %v", err)
	}
	if len(accounts.updates) != 1 {
		t.Fatalf("expected one token update, got %d", len(accounts.updates))
	}
	expected := now.Add(defaultTokenLifetime)
	if !accounts.updates[0].expiry.Equal(expected) {
		t.Errorf("expected default lifetime expiry %v, got %v", expected, accounts.updates[0].expiry)
	}
}

func newCallbackServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"access_token": "new-token", "token_type": "Bearer", "expires_in": 3600, "refresh_token": "new-refresh"}`)
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"email": "student@gmail.com"}`)
	})
	return httptest.NewServer(mux)
}

func TestHandleCallbackLinksAccount(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	server := newCallbackServer()
	defer server.Close()

	accounts := &fakeAccounts{}
	users := &fakeUsers{users: map[string]*domain.User{
		"student@gmail.com": {ID: 3, Email: "student@gmail.com"},
	}}
	svc := newTestGoogleService(accounts, users, server.URL+"/token", now)
	svc.userinfoURL = server.URL + "/userinfo"

	user, err := svc.HandleCallback(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("HandleCallback: %v", err)
	}
	if user.ID != 3 {
		t.Errorf("expected user 3, got %d", user.ID)
	}
	if len(accounts.upserts) != 1 {
		t.Fatalf("expected one upsert, got %d", len(accounts.upserts))
	}
	linked := accounts.upserts[0]
	if linked.UserID != 3 || linked.GoogleEmail != "student@gmail.com" {
		t.Errorf("unexpected linked account %+v", linked)
	}
	if linked.RefreshToken != "new-refresh" {
		t.Errorf("expected refresh token to be stored, got %q", linked.RefreshToken)
	}
	if linked.TokenExpiry.Before(now.Add(55*time.Minute)) || linked.TokenExpiry.After(now.Add(65*time.Minute)) {
		t.Errorf("expiry %v not near one hour out", linked.TokenExpiry)
	}
}

func TestHandleCallbackConflictingLink(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	server := newCallbackServer()
	defer server.Close()

	accounts := &fakeAccounts{upsertErr: persistence.ErrDuplicate}
	users := &fakeUsers{users: map[string]*domain.User{
		"student@gmail.com": {ID: 3, Email: "student@gmail.com"},
	}}
	svc := newTestGoogleService(accounts, users, server.URL+"/token", now)
	svc.userinfoURL = server.URL + "/userinfo"

	_, err := svc.HandleCallback(context.Background(), "auth-code")
	if !apperr.IsCode(err, apperr.CodeConflict) {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestResolveUserByGoogleEmail(t *testing.T) {
	accounts := &fakeAccounts{account: &domain.GoogleAccount{
		UserID:      7,
		GoogleEmail: "student@gmail.com",
	}}
	svc := newTestGoogleService(accounts, &fakeUsers{}, "http://localhost/token", time.Now())

	userID, err := svc.ResolveUserByGoogleEmail(context.Background(), "student@gmail.com")
	if err != nil {
		t.Fatalf("ResolveUserByGoogleEmail: %v", err)
	}
	if userID != 7 {
		t.Errorf("expected user 7, got %d", userID)
	}

	_, err = svc.ResolveUserByGoogleEmail(context.Background(), "stranger@gmail.com")
	if !apperr.IsCode(err, apperr.CodeUnknownAccount) {
		t.Errorf("expected unknown account error, got %v", err)
	}
}
