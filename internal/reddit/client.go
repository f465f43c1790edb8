package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"karmaforge/internal/metrics"
	"karmaforge/internal/model"
)

// SourceClient defines the Reddit operations the bot uses. Discovery and
// posting only depend on this interface; the HTTP client below is the
// production implementation.
type SourceClient interface {
	FetchHot(ctx context.Context, subreddit string, limit int) ([]model.Submission, error)
	FetchTopLevelComments(ctx context.Context, submissionID string, limit int) ([]model.Comment, error)
	SubmitReply(ctx context.Context, fullname, text string) (model.Reply, error)
}

// Credentials for a Reddit "script" app (password grant).
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// HTTPClient talks to the Reddit API with rate limiting and retries.
type HTTPClient struct {
	authURL     string
	apiURL      string
	creds       Credentials
	userAgent   string
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxAttempts int
	baseBackoff time.Duration

	token       string
	tokenExpiry time.Time
}

func NewHTTPClient(creds Credentials) *HTTPClient {
	return &HTTPClient{
		authURL:     "https://www.reddit.com",
		apiURL:      "https://oauth.reddit.com",
		creds:       creds,
		userAgent:   fmt.Sprintf("karmaforge/1.0 (by /u/%s)", creds.Username),
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		limiter:     newDefaultLimiter(),
		maxAttempts: getEnvInt("REDDIT_API_MAX_ATTEMPTS", 5),
		baseBackoff: time.Duration(getEnvInt("REDDIT_API_BASE_BACKOFF_MS", 500)) * time.Millisecond,
	}
}

var _ SourceClient = (*HTTPClient)(nil)

// FetchHot returns the hot listing for a subreddit, newest page only.
func (c *HTTPClient) FetchHot(ctx context.Context, subreddit string, limit int) ([]model.Submission, error) {
	if subreddit == "" {
		return nil, errors.New("empty subreddit")
	}
	u := fmt.Sprintf("%s/r/%s/hot?limit=%d&raw_json=1", c.apiURL, url.PathEscape(subreddit), clamp(limit, 1, 100))
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("reddit api status %d", resp.StatusCode)
	}
	var raw listing
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	out := make([]model.Submission, 0, len(raw.Data.Children))
	for _, ch := range raw.Data.Children {
		if ch.Kind != "t3" {
			continue
		}
		d := ch.Data
		out = append(out, model.Submission{
			ID:          d.ID,
			Fullname:    d.Name,
			Subreddit:   d.Subreddit,
			Title:       d.Title,
			SelfText:    d.Selftext,
			URL:         d.URL,
			Permalink:   d.Permalink,
			Score:       d.Score,
			NumComments: d.NumComments,
			CreatedAt:   time.Unix(int64(d.CreatedUTC), 0).UTC(),
			IsSelf:      d.IsSelf,
			Stickied:    d.Stickied,
		})
	}
	return out, nil
}

// FetchTopLevelComments returns first-level comments for a submission.
// "load more" continuations are dropped rather than expanded, matching
// the zero-expansion fetch the pacing model expects.
func (c *HTTPClient) FetchTopLevelComments(ctx context.Context, submissionID string, limit int) ([]model.Comment, error) {
	if submissionID == "" {
		return nil, errors.New("empty submission id")
	}
	u := fmt.Sprintf("%s/comments/%s?limit=%d&depth=1&raw_json=1", c.apiURL, url.PathEscape(submissionID), clamp(limit, 1, 100))
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("reddit api status %d", resp.StatusCode)
	}
	// The comments endpoint returns two listings: the post and its comments.
	var raw []listing
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	if len(raw) < 2 {
		return nil, nil
	}
	out := make([]model.Comment, 0, len(raw[1].Data.Children))
	for _, ch := range raw[1].Data.Children {
		if ch.Kind != "t1" {
			continue
		}
		out = append(out, model.Comment{Body: ch.Data.Body, Score: ch.Data.Score})
	}
	return out, nil
}

// SubmitReply posts a comment under the thing identified by fullname.
func (c *HTTPClient) SubmitReply(ctx context.Context, fullname, text string) (model.Reply, error) {
	var out model.Reply
	if fullname == "" {
		return out, errors.New("empty thing id")
	}
	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("thing_id", fullname)
	form.Set("text", text)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/api/comment", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.do(ctx, req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return out, fmt.Errorf("reddit api status %d", resp.StatusCode)
	}
	var raw struct {
		JSON struct {
			Errors [][]any `json:"errors"`
			Data   struct {
				Things []thing `json:"things"`
			} `json:"data"`
		} `json:"json"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return out, err
	}
	if len(raw.JSON.Errors) > 0 {
		return out, fmt.Errorf("reddit api error: %v", raw.JSON.Errors[0])
	}
	if len(raw.JSON.Data.Things) > 0 {
		out.ID = raw.JSON.Data.Things[0].Data.ID
		out.Permalink = raw.JSON.Data.Things[0].Data.Permalink
	}
	return out, nil
}

// do authorizes, rate-limits, and retries a request.
func (c *HTTPClient) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.doWithRetry(ctx, req)
}

func (c *HTTPClient) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	backoff := c.baseBackoff
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		resp, err := c.httpClient.Do(req.Clone(ctx))
		if err == nil {
			if resp.StatusCode == http.StatusTooManyRequests || (resp.StatusCode >= 500 && resp.StatusCode <= 599) {
				ra := resp.Header.Get("Retry-After")
				_ = resp.Body.Close()
				wait := backoff
				if ra != "" {
					if secs, err := strconv.Atoi(ra); err == nil {
						wait = time.Duration(secs) * time.Second
					} else if t, err := http.ParseTime(ra); err == nil {
						if d := time.Until(t); d > 0 {
							wait = d
						}
					}
				}
				// jitter +/-20%
				jitter := time.Duration(float64(wait) * 0.2)
				if jitter > 0 {
					wait = wait - jitter + time.Duration(time.Now().UnixNano()%int64(2*jitter))
				}
				metrics.APIRetries.Inc()
				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
				backoff *= 2
				continue
			}
			return resp, nil
		}
		lastErr = err
		metrics.APIRetries.Inc()
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("request failed after %d attempts: %v", c.maxAttempts, lastErr)
}

type listing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []thing `json:"children"`
	} `json:"data"`
}

type thing struct {
	Kind string `json:"kind"`
	Data struct {
		// t3 (submission) fields
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Subreddit   string  `json:"subreddit"`
		Title       string  `json:"title"`
		Selftext    string  `json:"selftext"`
		URL         string  `json:"url"`
		Permalink   string  `json:"permalink"`
		NumComments int     `json:"num_comments"`
		CreatedUTC  float64 `json:"created_utc"`
		IsSelf      bool    `json:"is_self"`
		Stickied    bool    `json:"stickied"`
		// shared / t1 (comment) fields
		Score int    `json:"score"`
		Body  string `json:"body"`
	} `json:"data"`
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil && i > 0 {
		return i
	}
	return def
}
