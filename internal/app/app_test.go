package app_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kanban/internal/app"
	"kanban/internal/config"
	"kanban/internal/handlers"
	"kanban/internal/handlers/dto"
	"kanban/internal/metrics"
	"kanban/internal/models/task"
	"kanban/internal/repository/task/file"
	"kanban/internal/service"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// BoardTestSuite гоняет запросы через настоящий роутер и файловое хранилище в памяти
type BoardTestSuite struct {
	suite.Suite
	fs     afero.Fs
	server *httptest.Server
}

func (s *BoardTestSuite) SetupTest() {
	s.fs = afero.NewMemMapFs()
	repo := file.NewTaskStorage(s.fs, file.DefaultPath)

	cfg := &config.Config{
		Server:    config.ServerConfig{RequestTimeout: 5 * time.Second},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
		RateLimit: config.RateLimitConfig{RPM: 0},
	}
	router := app.NewRouter(handlers.NewTaskHandler(service.NewTaskService(repo)), metrics.New(), cfg)
	s.server = httptest.NewServer(router)
}

func (s *BoardTestSuite) TearDownTest() {
	s.server.Close()
}

func TestBoardTestSuite(t *testing.T) {
	suite.Run(t, new(BoardTestSuite))
}

func (s *BoardTestSuite) do(method, path, body string) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, s.server.URL+path, reader)
	require.NoError(s.T(), err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.server.Client().Do(req)
	require.NoError(s.T(), err)
	s.T().Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// TestLifecycle: создание, перенос, удаление, пустая доска
func (s *BoardTestSuite) TestLifecycle() {
	t := s.T()

	resp := s.do(http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]task.Task](t, resp))

	resp = s.do(http.MethodPost, "/tasks", `{"title":"A","status":"todo","priority":"low"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[task.Task](t, resp)
	assert.Equal(t, "A", created.Title)
	assert.Equal(t, task.StatusTodo, created.Status)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	raw, err := afero.ReadFile(s.fs, file.DefaultPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), created.ID.String())

	resp = s.do(http.MethodPut, "/tasks/"+created.ID.String(), `{"status":"doing"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[task.Task](t, resp)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, task.StatusDoing, updated.Status)
	assert.Equal(t, "A", updated.Title)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	resp = s.do(http.MethodDelete, "/tasks/"+created.ID.String(), "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = s.do(http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]task.Task](t, resp))

	resp = s.do(http.MethodDelete, "/tasks/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func (s *BoardTestSuite) TestCreateKeepsOrderAndValidates() {
	t := s.T()

	resp := s.do(http.MethodPost, "/tasks", `{}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, service.CodeValidation, body.Code)
	assert.Contains(t, body.Error, "title")

	resp = s.do(http.MethodPost, "/tasks", `{"title":"A","priority":"low"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Error, "status")

	for _, title := range []string{"first", "second", "third"} {
		resp = s.do(http.MethodPost, "/tasks", `{"title":"`+title+`","status":"todo","priority":"medium"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp = s.do(http.MethodGet, "/tasks", "")
	tasks := decode[[]task.Task](t, resp)
	require.Len(t, tasks, 3)
	assert.Equal(t, "first", tasks[0].Title)
	assert.Equal(t, "third", tasks[2].Title)
}

func (s *BoardTestSuite) TestUpdateErrors() {
	t := s.T()

	resp := s.do(http.MethodPost, "/tasks", `{"title":"A","status":"todo","priority":"low"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[task.Task](t, resp)

	resp = s.do(http.MethodPut, "/tasks/"+created.ID.String(), `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, service.CodeEmptyUpdate, decode[dto.ErrorResponse](t, resp).Code)

	resp = s.do(http.MethodPut, "/tasks/"+created.ID.String(), `{"title":" "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, service.CodeValidation, errBody.Code)
	assert.Contains(t, errBody.Error, "title")

	resp = s.do(http.MethodPut, "/tasks/not-a-uuid", `{"status":"done"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(http.MethodPut, "/tasks/00000000-0000-4000-8000-000000000000", `{"status":"done"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// неудачные запросы ничего не поменяли
	resp = s.do(http.MethodGet, "/tasks", "")
	tasks := decode[[]task.Task](t, resp)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.StatusTodo, tasks[0].Status)
	assert.Equal(t, "A", tasks[0].Title)
}

func (s *BoardTestSuite) TestMethodNotAllowed() {
	t := s.T()

	resp := s.do(http.MethodPatch, "/tasks", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "GET, POST", resp.Header.Get("Allow"))

	resp = s.do(http.MethodGet, "/tasks/00000000-0000-4000-8000-000000000000", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "PUT, DELETE", resp.Header.Get("Allow"))
}

func (s *BoardTestSuite) TestHealthAndMetrics() {
	t := s.T()

	resp := s.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[dto.HealthResponse](t, resp).Status)

	resp = s.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `kanban_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func (s *BoardTestSuite) TestRequestIDEchoed() {
	resp := s.do(http.MethodGet, "/tasks", "")
	assert.NotEmpty(s.T(), resp.Header.Get("X-Request-ID"))
}
