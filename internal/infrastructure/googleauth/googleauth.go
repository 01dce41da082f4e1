// Package googleauth builds authenticated HTTP clients from per-account
// stored OAuth tokens.
package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Credentials identifies the OAuth application the tokens were issued
// to. Token files may carry their own client ID/secret, which wins.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Dir          string
}

// storedToken mirrors the on-disk token file layout.
type storedToken struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiryDate   int64  `json:"expiry_date"`
}

// Client reads the token file and returns an HTTP client that refreshes
// the access token as needed.
func Client(ctx context.Context, creds Credentials, tokenFile string) (*http.Client, error) {
	path := tokenFile
	if !filepath.IsAbs(path) && creds.Dir != "" {
		path = filepath.Join(creds.Dir, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read token file %s: %w", path, err)
	}

	var stored storedToken
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("parse token file %s: %w", path, err)
	}

	clientID := stored.ClientID
	clientSecret := stored.ClientSecret
	if clientID == "" || clientSecret == "" {
		clientID = creds.ClientID
		clientSecret = creds.ClientSecret
	}
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("no OAuth client credentials for %s", path)
	}

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
	}

	token := &oauth2.Token{
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
		TokenType:    "Bearer",
	}
	if stored.ExpiryDate > 0 {
		token.Expiry = time.UnixMilli(stored.ExpiryDate)
	}

	return conf.Client(ctx, token), nil
}

// TokenFileFor returns the conventional token file name for an account.
func TokenFileFor(email string) string {
	return fmt.Sprintf(".oauth2.%s.json", email)
}
