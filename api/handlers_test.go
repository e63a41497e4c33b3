package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasetyowira/qrgen/api/middleware"
	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/infrastructure/qrcode"
)

// recordingClipboard captures clipboard writes
type recordingClipboard struct {
	mu     sync.Mutex
	writes []string
}

func (c *recordingClipboard) WriteText(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes = append(c.writes, text)
	return nil
}

func (c *recordingClipboard) last() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.writes) == 0 {
		return ""
	}
	return c.writes[len(c.writes)-1]
}

func newTestSessions(clip *recordingClipboard, opts ...generator.Option) *generator.Sessions {
	if clip == nil {
		clip = &recordingClipboard{}
	}
	encoder := qrcode.NewGenerator()
	return generator.NewSessions(8, func() *generator.Controller {
		return generator.NewController(encoder, clip, opts...)
	})
}

// client drives the router while carrying the session cookie
type client struct {
	t      *testing.T
	router *Router
	cookie *http.Cookie
}

func newClient(t *testing.T, sessions *generator.Sessions) *client {
	router := NewRouter(NewHandler(), sessions)
	router.SetupRoutes()
	return &client{t: t, router: router}
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == constant.SessionCookieName {
			c.cookie = cookie
		}
	}
	return w
}

func (c *client) state(w *httptest.ResponseRecorder) StateResponse {
	var resp StateResponse
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetState_NewSession(t *testing.T) {
	c := newClient(t, newTestSessions(nil))

	w := c.do(http.MethodGet, "/api/state", "")

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, c.cookie)
	state := c.state(w)
	assert.Empty(t, state.SourceText)
	assert.Equal(t, "#000000", state.Foreground)
	assert.False(t, state.HasArtifact)
	assert.Equal(t, "light", state.Theme)
	assert.Equal(t, "#ffffff", state.Style.CardBackground)
}

func TestGenerateCode_Scenario(t *testing.T) {
	c := newClient(t, newTestSessions(nil))

	w := c.do(http.MethodPut, "/api/text", `{"value":"https://example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = c.do(http.MethodPut, "/api/color", `{"value":"#000000"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = c.do(http.MethodPost, "/api/generate", "")

	require.Equal(t, http.StatusOK, w.Code)
	state := c.state(w)
	assert.True(t, state.HasArtifact)
	assert.Equal(t, "QR for: https://example.com", state.Caption)
	assert.True(t, strings.HasPrefix(state.Artifact, constant.DataURIPrefixPNG))

	w = c.do(http.MethodGet, "/api/download", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "qrcode.png")

	decoded, err := qrcode.NewGenerator().Decode(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", decoded)
}

func TestGenerateCode_EmptyTextLeavesNoArtifact(t *testing.T) {
	c := newClient(t, newTestSessions(nil))

	w := c.do(http.MethodPost, "/api/generate", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, c.state(w).HasArtifact)
}

func TestGenerateCode_InvalidColor(t *testing.T) {
	c := newClient(t, newTestSessions(nil))
	c.do(http.MethodPut, "/api/text", `{"value":"abc"}`)
	c.do(http.MethodPut, "/api/color", `{"value":"blue"}`)

	w := c.do(http.MethodPost, "/api/generate", "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, constant.ErrInvalidColor)

	w = c.do(http.MethodGet, "/api/state", "")
	assert.False(t, c.state(w).HasArtifact)
}

func TestDownloadCode_NothingGenerated(t *testing.T) {
	c := newClient(t, newTestSessions(nil))

	w := c.do(http.MethodGet, "/api/download", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, constant.ContentTypeJSON, w.Header().Get("Content-Type"))
}

func TestUpdateText_InvalidBody(t *testing.T) {
	c := newClient(t, newTestSessions(nil))

	w := c.do(http.MethodPut, "/api/text", `not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCopyLink_NotificationWindow(t *testing.T) {
	clip := &recordingClipboard{}
	mc := clock.NewMock()
	c := newClient(t, newTestSessions(clip, generator.WithClock(mc)))
	c.do(http.MethodPut, "/api/text", `{"value":"abc"}`)

	w := c.do(http.MethodPost, "/api/copy", "")

	require.Equal(t, http.StatusOK, w.Code)
	state := c.state(w)
	assert.True(t, state.NotificationVisible)
	assert.Equal(t, constant.NotificationText, state.Notification)
	assert.Eventually(t, func() bool { return clip.last() == "abc" }, time.Second, 5*time.Millisecond)

	mc.Add(constant.NotificationTTL)
	assert.Eventually(t, func() bool {
		return !c.state(c.do(http.MethodGet, "/api/state", "")).NotificationVisible
	}, time.Second, 10*time.Millisecond)
}

func TestCopyLink_EmptyText(t *testing.T) {
	clip := &recordingClipboard{}
	c := newClient(t, newTestSessions(clip))

	w := c.do(http.MethodPost, "/api/copy", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, c.state(w).NotificationVisible)
	assert.Empty(t, clip.last())
}

func TestToggleTheme(t *testing.T) {
	c := newClient(t, newTestSessions(nil))

	w := c.do(http.MethodPost, "/api/theme", "")

	require.Equal(t, http.StatusOK, w.Code)
	state := c.state(w)
	assert.Equal(t, "dark", state.Theme)
	assert.Equal(t, "#1f2937", state.Style.CardBackground)
}

func TestSessions_AreIsolatedByCookie(t *testing.T) {
	sessions := newTestSessions(nil)
	alice := newClient(t, sessions)
	bob := newClient(t, sessions)

	alice.do(http.MethodPut, "/api/text", `{"value":"https://alice.example"}`)
	w := bob.do(http.MethodGet, "/api/state", "")

	assert.Empty(t, bob.state(w).SourceText)
	assert.NotEqual(t, alice.cookie.Value, bob.cookie.Value)
	assert.Equal(t, 2, sessions.Len())
}

func TestIndex_RendersPage(t *testing.T) {
	c := newClient(t, newTestSessions(nil))

	w := c.do(http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constant.ContentTypeHTML, w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "QR Code Generator")
	assert.Contains(t, body, constant.MsgPlaceholder)
}

func TestHandler_WithoutSession(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)

	NewHandler().GetState(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandler_WithInjectedController(t *testing.T) {
	ctrl := generator.NewController(qrcode.NewGenerator(), &recordingClipboard{})
	ctrl.SetSourceText(context.Background(), "abc")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req = req.WithContext(middleware.WithController(req.Context(), ctrl))

	NewHandler().GetState(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var state StateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, "abc", state.SourceText)
}
