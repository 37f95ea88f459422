package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/intentbot/intentbot-go/internal/classifier"
	"github.com/intentbot/intentbot-go/internal/corpus"
	"github.com/intentbot/intentbot-go/internal/model"
	"github.com/intentbot/intentbot-go/internal/responder"
	"github.com/intentbot/intentbot-go/internal/service"
	"github.com/intentbot/intentbot-go/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	router     *gin.Engine
	assistant  *service.AssistantService
	sessions   *service.SessionService
	corpusPath string
}

func newTestEnv(t *testing.T, train bool) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	path := filepath.Join(t.TempDir(), "corpus.txt")
	assistant := service.NewAssistantService(
		classifier.NewClassifier(classifier.DefaultConfidenceFloor, logger),
		responder.NewDispatcher(logger),
		corpus.NewLoader(logger),
		stats.NewMemoryRecorder(),
		path,
		logger,
	)
	if train {
		require.NoError(t, assistant.Init())
	}
	sessions := service.NewSessionService(logger)
	chat := service.NewChatService(assistant, sessions, logger)

	return &testEnv{
		router:     NewRouter(RouterConfig{ServiceName: "intentbot-test"}, assistant, sessions, chat, logger),
		assistant:  assistant,
		sessions:   sessions,
		corpusPath: path,
	}
}

func (e *testEnv) do(t *testing.T, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestRespond(t *testing.T) {
	env := newTestEnv(t, true)

	w := env.do(t, http.MethodPost, "/api/respond", model.RespondRequest{Text: "turn on the tv"})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[model.RespondResponse](t, w)
	assert.Equal(t, "📺 Turning on the TV.", resp.Reply)
	assert.Equal(t, model.CategoryHome, resp.Category)
	assert.True(t, resp.Known)
	assert.GreaterOrEqual(t, resp.Confidence, classifier.DefaultConfidenceFloor)
}

func TestRespond_UnknownText(t *testing.T) {
	env := newTestEnv(t, true)

	w := env.do(t, http.MethodPost, "/api/respond", model.RespondRequest{Text: "zzzz qqqq"})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[model.RespondResponse](t, w)
	assert.False(t, resp.Known)
	assert.Equal(t, model.CategoryUnknown, resp.Category)
	assert.Contains(t, responder.Replies(model.CategoryUnknown), resp.Reply)
}

func TestRespond_BadRequests(t *testing.T) {
	env := newTestEnv(t, true)

	w := env.do(t, http.MethodPost, "/api/respond", model.RespondRequest{Text: "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/respond", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClassify(t *testing.T) {
	env := newTestEnv(t, true)

	w := env.do(t, http.MethodGet, "/api/classify?question=will+it+rain", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[model.ClassifyResponse](t, w)
	assert.Equal(t, "will it rain", resp.Question)
	assert.Equal(t, model.CategoryWeather, resp.Category)
	assert.True(t, resp.Known)

	w = env.do(t, http.MethodGet, "/api/classify", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRetrain(t *testing.T) {
	env := newTestEnv(t, true)

	lines := strings.Repeat("hola,greet\nadios,farewell\n", 3)
	require.NoError(t, os.WriteFile(env.corpusPath, []byte(lines), 0o644))

	w := env.do(t, http.MethodPost, "/api/retrain", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[model.RetrainResponse](t, w)
	assert.True(t, resp.Success)
	assert.False(t, resp.IsDefault)
	assert.Equal(t, 6, resp.Examples)

	assert.Equal(t, model.CategoryGreet, env.assistant.Classify("hola").Category)
}

func TestRetrain_Failure(t *testing.T) {
	env := newTestEnv(t, true)
	require.NoError(t, os.WriteFile(env.corpusPath, []byte("hola,greet\n"), 0o644))

	w := env.do(t, http.MethodPost, "/api/retrain", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decode[model.RetrainResponse](t, w)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}

func TestStats(t *testing.T) {
	env := newTestEnv(t, true)
	env.do(t, http.MethodPost, "/api/respond", model.RespondRequest{Text: "thanks"})
	env.do(t, http.MethodPost, "/api/respond", model.RespondRequest{Text: "thanks a lot"})

	w := env.do(t, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[struct {
		Stats stats.Counts `json:"stats"`
	}](t, w)
	assert.Equal(t, int64(2), body.Stats["gratitude"][stats.OutcomeResolved])
}

func TestHealth(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		env := newTestEnv(t, true)
		w := env.do(t, http.MethodGet, "/api/health", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decode[map[string]interface{}](t, w)
		assert.Equal(t, "UP", body["status"])
		assert.Equal(t, "intentbot-test", body["service"])
		assert.Equal(t, true, body["defaultCorpus"])
		assert.Equal(t, float64(0), body["online_users"])
	})

	t.Run("untrained", func(t *testing.T) {
		env := newTestEnv(t, false)
		w := env.do(t, http.MethodGet, "/api/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := decode[map[string]interface{}](t, w)
		assert.Equal(t, "untrained", body["model"])
	})
}

func TestWebSocket_InvalidUID(t *testing.T) {
	env := newTestEnv(t, true)
	w := env.do(t, http.MethodGet, "/ws?uid=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebSocket_ChatRoundTrip(t *testing.T) {
	env := newTestEnv(t, true)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?uid=5"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	require.NoError(t, conn.WriteJSON(model.ChatMessage{
		MessageID: "m-1",
		Type:      model.MessageTypeChat,
		Content:   "switch off the lamp",
	}))

	var reply model.ChatMessage
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, model.MessageTypeAIResponse, reply.Type)
	assert.Equal(t, "m-1", reply.ReplyTo)
	assert.Equal(t, model.CategoryHome, reply.Category)
	assert.Equal(t, "💡 Turning off the lights.", reply.Content)

	require.NoError(t, conn.WriteJSON(model.ChatMessage{MessageID: "m-2", Type: "BOGUS"}))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, model.MessageTypeError, reply.Type)
	assert.Equal(t, "m-2", reply.ReplyTo)

	assert.Equal(t, 1, env.sessions.GetOnlineCount())
}
