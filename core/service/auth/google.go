// Package auth implements password login and the Google OAuth token
// lifecycle.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kisxo/SikshaSathi-Backend/adapter/out/persistence"
	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/port/out"
	"github.com/kisxo/SikshaSathi-Backend/pkg/apperr"
	"github.com/kisxo/SikshaSathi-Backend/pkg/httputil"
	"github.com/kisxo/SikshaSathi-Backend/pkg/logger"

	json "github.com/goccy/go-json"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
)

// tokenGraceWindow treats tokens expiring within this window as already
// expired, so a token cannot die mid-request.
const tokenGraceWindow = 60 * time.Second

// defaultTokenLifetime applies when the provider omits expires_in.
const defaultTokenLifetime = 3600 * time.Second

const defaultUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleService manages linked Google accounts and their tokens.
type GoogleService struct {
	accounts out.GoogleAccountRepository
	users    out.UserRepository

	config      *oauth2.Config
	userinfoURL string
	httpClient  *http.Client
	now         func() time.Time
}

// GoogleConfig configures the OAuth client.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// NewGoogleService creates a GoogleService.
func NewGoogleService(accounts out.GoogleAccountRepository, users out.UserRepository, cfg GoogleConfig) *GoogleService {
	return &GoogleService{
		accounts: accounts,
		users:    users,
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/gmail.readonly",
			},
			Endpoint: googleoauth.Endpoint,
		},
		userinfoURL: defaultUserinfoURL,
		httpClient:  httputil.GoogleClient(),
		now:         time.Now,
	}
}

// AuthURL returns the consent page URL. Offline access with forced
// approval is required to receive a refresh token.
func (s *GoogleService) AuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// HandleCallback exchanges the authorization code, resolves the Google
// email, and links the account to an existing user. Unknown emails are
// rejected.
func (s *GoogleService) HandleCallback(ctx context.Context, code string) (*domain.User, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			return nil, apperr.RefreshFailed(string(rerr.Body), err)
		}
		return nil, apperr.Wrap(err, apperr.CodeProviderError, "code exchange failed", http.StatusBadGateway)
	}

	email, err := s.fetchGoogleEmail(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, apperr.Forbidden("No account matches this Google email")
		}
		return nil, err
	}

	expiry := s.now().Add(defaultTokenLifetime)
	if !token.Expiry.IsZero() {
		expiry = s.now().Add(time.Until(token.Expiry))
	}

	account := &domain.GoogleAccount{
		UserID:       user.ID,
		GoogleEmail:  email,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenExpiry:  expiry.UTC(),
	}
	if err := s.accounts.Upsert(ctx, account); err != nil {
		if errors.Is(err, persistence.ErrDuplicate) {
			return nil, apperr.Conflict("This Google account is already linked to another user")
		}
		return nil, err
	}

	logger.Info("Linked Google account %s to user %d", email, user.ID)
	return user, nil
}

// fetchGoogleEmail resolves the email behind an access token.
func (s *GoogleService) fetchGoogleEmail(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userinfoURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", apperr.Wrap(err, apperr.CodeProviderError, "userinfo request failed", http.StatusBadGateway)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", apperr.ProviderError(resp.StatusCode, string(body))
	}

	var info struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return "", fmt.Errorf("failed to decode userinfo: %w", err)
	}
	if info.Email == "" {
		return "", apperr.ProviderError(resp.StatusCode, "userinfo response missing email")
	}
	return info.Email, nil
}

// GetValidAccessToken returns an access token that is valid for at
// least the grace window, refreshing it first when needed. A failed
// refresh leaves the stored row untouched.
func (s *GoogleService) GetValidAccessToken(ctx context.Context, userID int64) (string, error) {
	account, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return "", apperr.NotLinked()
		}
		return "", err
	}

	// Stored expiries may predate timezone normalization.
	expiry := account.TokenExpiry.UTC()
	if s.now().UTC().Add(tokenGraceWindow).Before(expiry) {
		return account.AccessToken, nil
	}

	if account.RefreshToken == "" {
		return "", apperr.MissingRefreshToken()
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	source := s.config.TokenSource(ctx, &oauth2.Token{RefreshToken: account.RefreshToken})

	token, err := source.Token()
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			return "", apperr.RefreshFailed(string(rerr.Body), err)
		}
		return "", apperr.Wrap(err, apperr.CodeProviderError, "token refresh failed", http.StatusBadGateway)
	}

	// oauth2 anchors Expiry on the wall clock. Re-anchor the remaining
	// lifetime on the service clock before storing.
	newExpiry := s.now().Add(defaultTokenLifetime)
	if !token.Expiry.IsZero() {
		newExpiry = s.now().Add(time.Until(token.Expiry))
	}

	if err := s.accounts.UpdateTokens(ctx, userID, token.AccessToken, newExpiry.UTC()); err != nil {
		return "", err
	}

	return token.AccessToken, nil
}

// GetAccount returns the linked account for a user.
func (s *GoogleService) GetAccount(ctx context.Context, userID int64) (*domain.GoogleAccount, error) {
	account, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, apperr.NotLinked()
		}
		return nil, err
	}
	return account, nil
}

// ResolveUserByGoogleEmail maps a notification email to the owning
// user id.
func (s *GoogleService) ResolveUserByGoogleEmail(ctx context.Context, googleEmail string) (int64, error) {
	account, err := s.accounts.GetByEmail(ctx, googleEmail)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return 0, apperr.UnknownAccount(googleEmail)
		}
		return 0, err
	}
	return account.UserID, nil
}
