package reddit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const tokenJSON = `{"access_token":"tok","token_type":"bearer","expires_in":3600}`

func newTestClient(ts *httptest.Server) *HTTPClient {
	c := NewHTTPClient(Credentials{ClientID: "id", ClientSecret: "sec", Username: "bot", Password: "pw"})
	c.httpClient = ts.Client()
	c.authURL = ts.URL
	c.apiURL = ts.URL
	c.maxAttempts = 3
	c.baseBackoff = 10 * time.Millisecond
	return c
}

func TestFetchHotParsesListing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/access_token":
			_, _ = w.Write([]byte(tokenJSON))
		case "/r/golang/hot":
			if r.Header.Get("Authorization") != "Bearer tok" {
				t.Errorf("missing bearer token")
			}
			_, _ = w.Write([]byte(`{"kind":"Listing","data":{"children":[
				{"kind":"t3","data":{"id":"abc","name":"t3_abc","subreddit":"golang","title":"Generics","selftext":"body","score":150,"num_comments":42,"created_utc":1700000000,"is_self":true,"stickied":false}},
				{"kind":"t3","data":{"id":"def","name":"t3_def","subreddit":"golang","title":"Link","url":"https://example.com","score":90,"num_comments":5,"created_utc":1700000100,"is_self":false,"stickied":true}}
			]}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	c := newTestClient(ts)
	subs, err := c.FetchHot(context.Background(), "golang", 25)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 2 {
		t.Fatalf("got %d submissions", len(subs))
	}
	s := subs[0]
	if s.ID != "abc" || s.Fullname != "t3_abc" || s.Score != 150 || s.NumComments != 42 {
		t.Fatalf("unexpected submission: %+v", s)
	}
	if !s.IsSelf || s.Stickied {
		t.Fatalf("flags wrong: %+v", s)
	}
	if s.CreatedAt != time.Unix(1700000000, 0).UTC() {
		t.Fatalf("created at = %v", s.CreatedAt)
	}
	if !subs[1].Stickied {
		t.Fatalf("second submission should be stickied")
	}
}

func TestFetchTopLevelCommentsDropsMore(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/access_token":
			_, _ = w.Write([]byte(tokenJSON))
		case "/comments/abc":
			_, _ = w.Write([]byte(`[
				{"kind":"Listing","data":{"children":[{"kind":"t3","data":{"id":"abc"}}]}},
				{"kind":"Listing","data":{"children":[
					{"kind":"t1","data":{"body":"first","score":12}},
					{"kind":"more","data":{}},
					{"kind":"t1","data":{"body":"second","score":7}}
				]}}
			]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	c := newTestClient(ts)
	comments, err := c.FetchTopLevelComments(context.Background(), "abc", 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(comments) != 2 {
		t.Fatalf("got %d comments, want 2 (continuations dropped)", len(comments))
	}
	if comments[0].Body != "first" || comments[0].Score != 12 {
		t.Fatalf("unexpected comment: %+v", comments[0])
	}
}

func TestSubmitReplySurfacesAPIErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/access_token":
			_, _ = w.Write([]byte(tokenJSON))
		case "/api/comment":
			_ = r.ParseForm()
			if r.PostForm.Get("thing_id") != "t3_abc" {
				t.Errorf("thing_id = %q", r.PostForm.Get("thing_id"))
			}
			_, _ = w.Write([]byte(`{"json":{"errors":[["RATELIMIT","try again later","ratelimit"]]}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	c := newTestClient(ts)
	if _, err := c.SubmitReply(context.Background(), "t3_abc", "nice post"); err == nil {
		t.Fatal("expected api error")
	}
}

func TestSubmitReplySuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/access_token":
			_, _ = w.Write([]byte(tokenJSON))
		case "/api/comment":
			_, _ = w.Write([]byte(`{"json":{"errors":[],"data":{"things":[{"kind":"t1","data":{"id":"xyz","permalink":"/r/golang/comments/abc/x/xyz/"}}]}}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	c := newTestClient(ts)
	reply, err := c.SubmitReply(context.Background(), "t3_abc", "nice post")
	if err != nil {
		t.Fatal(err)
	}
	if reply.ID != "xyz" || reply.Permalink == "" {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

func TestDoWithRetryHandles429(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/test", nil)
	resp, err := c.doWithRetry(context.Background(), req)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if attempts < 2 {
		t.Fatalf("expected at least 2 attempts, got %d", attempts)
	}
}

func TestTokenReuse(t *testing.T) {
	tokenCalls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/access_token":
			tokenCalls++
			_, _ = w.Write([]byte(tokenJSON))
		default:
			_, _ = w.Write([]byte(`{"kind":"Listing","data":{"children":[]}}`))
		}
	}))
	defer ts.Close()

	c := newTestClient(ts)
	ctx := context.Background()
	if _, err := c.FetchHot(ctx, "golang", 25); err != nil {
		t.Fatal(err)
	}
	if _, err := c.FetchHot(ctx, "pics", 25); err != nil {
		t.Fatal(err)
	}
	if tokenCalls != 1 {
		t.Fatalf("token fetched %d times, want 1", tokenCalls)
	}
}
