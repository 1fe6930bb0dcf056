package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"

	"github.com/haneul-labs/nurical/internal/logger"
)

// authTimeout bounds how long we wait for the user to finish the browser
// authorization flow.
const authTimeout = 5 * time.Minute

// Authenticator performs the OAuth2 bootstrap: cached token when valid,
// interactive loopback flow otherwise.
type Authenticator struct {
	// CredentialsPath is the Google OAuth client file (installed app).
	CredentialsPath string
	// TokenPath is where the user token is cached between runs.
	TokenPath string
	// RateLimit configures the resulting store; zero means the default.
	RateLimit RateLimitConfig
}

// Authorize returns a Store backed by valid credentials, running the
// interactive flow when the cached token is missing or rejected. This is
// the only fatal failure path in the pipeline.
func (a *Authenticator) Authorize(ctx context.Context) (*Store, error) {
	conf, err := a.oauthConfig()
	if err != nil {
		return nil, err
	}

	if tok := a.loadToken(); tok != nil {
		store, err := NewStoreWithRateLimit(ctx, conf.TokenSource(ctx, tok), a.RateLimit)
		if err == nil {
			if probeErr := store.Probe(ctx); probeErr == nil {
				return store, nil
			}
			logger.Warn("cached token rejected, starting interactive authorization")
			_ = os.Remove(a.TokenPath)
		}
	}

	tok, err := a.loginFlow(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("authorization failed: %w", err)
	}

	if err := a.saveToken(tok); err != nil {
		logger.Warn("could not cache token: %v", err)
	} else {
		logger.Info("authorization succeeded, token cached at %s", a.TokenPath)
	}

	return NewStoreWithRateLimit(ctx, conf.TokenSource(ctx, tok), a.RateLimit)
}

// oauthConfig loads the OAuth client configuration from CredentialsPath.
func (a *Authenticator) oauthConfig() (*oauth2.Config, error) {
	b, err := os.ReadFile(a.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials file %s: %w", a.CredentialsPath, err)
	}

	conf, err := google.ConfigFromJSON(b, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials file %s: %w", a.CredentialsPath, err)
	}
	return conf, nil
}

// loginFlow runs the loopback authorization: local callback server on an
// ephemeral port, browser to the consent page, code exchange.
func (a *Authenticator) loginFlow(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	state := uuid.NewString()

	srv := NewCallbackServer(0, state)
	if err := srv.Start(); err != nil {
		return nil, fmt.Errorf("start callback server: %w", err)
	}
	defer srv.Stop() //nolint:errcheck

	conf.RedirectURL = srv.RedirectURI()
	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	logger.Info("open this URL in your browser to authorize access:")
	logger.Info("  %s", authURL)
	if err := OpenBrowser(authURL); err != nil {
		logger.Debug("could not open browser automatically: %v", err)
	}

	code, err := srv.WaitForCode(authTimeout)
	if err != nil {
		return nil, err
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}

// loadToken reads the cached token, returning nil when absent or invalid.
func (a *Authenticator) loadToken() *oauth2.Token {
	b, err := os.ReadFile(a.TokenPath)
	if err != nil {
		return nil
	}

	var tok oauth2.Token
	if err := json.Unmarshal(b, &tok); err != nil {
		return nil
	}
	return &tok
}

func (a *Authenticator) saveToken(tok *oauth2.Token) error {
	b, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return os.WriteFile(a.TokenPath, b, 0600)
}
