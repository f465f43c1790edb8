package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ensureToken fetches or refreshes the OAuth2 token via the password
// grant used by Reddit "script" apps. Tokens are cached with a safety
// margin before expiry.
func (c *HTTPClient) ensureToken(ctx context.Context) error {
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return nil
	}
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", c.creds.Username)
	form.Set("password", c.creds.Password)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL+"/api/v1/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.creds.ClientID, c.creds.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("token request status %d", resp.StatusCode)
	}
	var raw struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
		Error       string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return err
	}
	if raw.Error != "" {
		return fmt.Errorf("token request rejected: %s", raw.Error)
	}
	if raw.AccessToken == "" {
		return fmt.Errorf("token response missing access_token")
	}
	c.token = raw.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(raw.ExpiresIn)*time.Second - time.Minute)
	return nil
}
