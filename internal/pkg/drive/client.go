// Package drive uploads database snapshots to Google Drive. Authentication
// uses the loopback flow: a short-lived local HTTP server receives the OAuth
// callback while the operator approves access in the browser.
package drive

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/bmarinov/gym_go_server/internal/pkg/tokenstore"
)

const (
	uploadURL = "https://www.googleapis.com/upload/drive/v3/files?uploadType=multipart&fields=id,name"

	// First and last loopback callback port to try.
	callbackPortMin = 8080
	callbackPortMax = 8090

	authTimeout = 5 * time.Minute
)

var ErrAuthInProgress = errors.New("authentication already in progress")

type Client struct {
	clientID     string
	clientSecret string
	store        *tokenstore.Store

	authActive bool
}

func NewClient(clientID, clientSecret string, store *tokenstore.Store) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		store:        store,
	}
}

// IsAuthenticated reports whether a stored token exists.
func (c *Client) IsAuthenticated() bool {
	_, err := c.store.Load()
	return err == nil
}

func (c *Client) config(redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{"https://www.googleapis.com/auth/drive.file"},
		Endpoint:     google.Endpoint,
	}
}

// BeginAuth starts the loopback callback server and returns the URL the
// operator must open in a browser. The exchange completes in the background;
// the stored token appears once the callback fires. The server stops after
// the first callback or after five minutes.
func (c *Client) BeginAuth(ctx context.Context) (string, error) {
	if c.authActive {
		return "", ErrAuthInProgress
	}

	listener, port, err := listenLoopback()
	if err != nil {
		return "", err
	}

	stateBytes := make([]byte, 32)
	if _, err := rand.Read(stateBytes); err != nil {
		listener.Close()
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	state := hex.EncodeToString(stateBytes)

	redirectURL := fmt.Sprintf("http://localhost:%d/oauth/callback", port)
	cfg := c.config(redirectURL)
	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))

	c.authActive = true
	go c.awaitCallback(ctx, listener, cfg, state)

	return authURL, nil
}

func (c *Client) awaitCallback(ctx context.Context, listener net.Listener, cfg *oauth2.Config, state string) {
	defer func() { c.authActive = false }()

	done := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/callback", func(w http.ResponseWriter, r *http.Request) {
		defer close(done)

		q := r.URL.Query()
		if q.Get("error") != "" || q.Get("state") != state || q.Get("code") == "" {
			writePage(w, http.StatusBadRequest, "Error", "Go back to application")
			return
		}

		token, err := cfg.Exchange(r.Context(), q.Get("code"))
		if err != nil {
			log.Printf("Drive token exchange failed: %v", err)
			writePage(w, http.StatusBadRequest, "Error", "Go back to application")
			return
		}

		if err := c.store.Save(token); err != nil {
			log.Printf("Failed to store drive token: %v", err)
			writePage(w, http.StatusInternalServerError, "Error", "Go back to application")
			return
		}

		writePage(w, http.StatusOK, "Authentication Successful", "Go back to application")
		log.Println("Drive authentication completed")
	})

	server := &http.Server{Handler: mux}
	go server.Serve(listener)

	select {
	case <-done:
	case <-time.After(authTimeout):
		log.Println("Drive authentication timed out")
	case <-ctx.Done():
	}
	server.Close()
}

// Upload sends the snapshot as a multipart/related Drive upload and returns
// the file ID. Refreshed tokens are written back to the store.
func (c *Client) Upload(ctx context.Context, name string, data io.Reader) (string, error) {
	token, err := c.store.Load()
	if err != nil {
		return "", err
	}

	cfg := c.config("")
	source := cfg.TokenSource(ctx, token)
	httpClient := oauth2.NewClient(ctx, source)

	body, contentType, err := multipartBody(name, data)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("drive upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("drive api error: %s", string(raw))
	}

	var file struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return "", fmt.Errorf("failed to decode drive response: %w", err)
	}

	// Persist any refresh the transport performed
	if current, err := source.Token(); err == nil && current.AccessToken != token.AccessToken {
		if err := c.store.Save(current); err != nil {
			log.Printf("Failed to persist refreshed drive token: %v", err)
		}
	}

	return file.ID, nil
}

func multipartBody(name string, data io.Reader) (io.Reader, string, error) {
	raw, err := io.ReadAll(data)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := multipart.NewWriter(buf)

	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	metaPart, err := writer.CreatePart(metaHeader)
	if err != nil {
		return nil, "", err
	}
	meta := map[string]interface{}{"name": name}
	if err := json.NewEncoder(metaPart).Encode(meta); err != nil {
		return nil, "", err
	}

	fileHeader := textproto.MIMEHeader{}
	fileHeader.Set("Content-Type", "application/octet-stream")
	filePart, err := writer.CreatePart(fileHeader)
	if err != nil {
		return nil, "", err
	}
	if _, err := filePart.Write(raw); err != nil {
		return nil, "", err
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	contentType := "multipart/related; boundary=" + writer.Boundary()
	return buf, contentType, nil
}

func listenLoopback() (net.Listener, int, error) {
	for port := callbackPortMin; port <= callbackPortMax; port++ {
		listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err == nil {
			return listener, port, nil
		}
	}
	return nil, 0, fmt.Errorf("no free callback port in %d-%d", callbackPortMin, callbackPortMax)
}

func writePage(w http.ResponseWriter, status int, title, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
  <head><title>%s</title><meta charset="utf-8"></head>
  <body style="font-family: Arial, sans-serif; text-align: center; padding: 50px;">
    <h1>%s</h1>
    <p>%s</p>
    <script>setTimeout(() => window.close(), 3000);</script>
  </body>
</html>`, title, title, body)
}
