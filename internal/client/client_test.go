package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kanban/internal/app"
	"kanban/internal/client"
	"kanban/internal/config"
	"kanban/internal/handlers"
	"kanban/internal/handlers/dto"
	"kanban/internal/metrics"
	"kanban/internal/models/task"
	"kanban/internal/repository/task/inmemory"
	"kanban/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	svc := service.NewTaskService(inmemory.NewTaskStorage())
	router := app.NewRouter(handlers.NewTaskHandler(svc), metrics.New(), &config.Config{
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func strPtr(s string) *string {
	return &s
}

// TestClient_RoundTrip тестирует все операции против настоящего роутера
func TestClient_RoundTrip(t *testing.T) {
	srv := newBackend(t)
	c := client.New(srv.URL+"/", time.Second)
	ctx := context.Background()

	tasks, err := c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	created, err := c.Create(ctx, dto.CreateTaskRequest{
		Title:    "Buy milk",
		Status:   "todo",
		Priority: "low",
		DueDate:  "2024-05-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", created.Title)
	require.NotNil(t, created.DueDate)
	assert.Equal(t, "2024-05-01", created.DueDate.String())

	updated, err := c.Update(ctx, created.ID, dto.UpdateTaskRequest{Status: strPtr("doing")})
	require.NoError(t, err)
	assert.Equal(t, task.StatusDoing, updated.Status)

	require.NoError(t, c.Delete(ctx, created.ID))

	tasks, err = c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestClient_APIErrors(t *testing.T) {
	srv := newBackend(t)
	c := client.New(srv.URL, time.Second)
	ctx := context.Background()

	t.Run("validation error carries server message", func(t *testing.T) {
		_, err := c.Create(ctx, dto.CreateTaskRequest{Status: "todo", Priority: "low"})

		var apiErr *client.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, service.CodeValidation, apiErr.Code)
		assert.Contains(t, apiErr.Message, "title")
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		err := c.Delete(ctx, uuid.New())
		assert.True(t, client.IsNotFound(err))
	})
}

func TestClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := client.New(srv.URL, time.Second).List(context.Background())

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream down", apiErr.Message)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := client.New(url, time.Second).List(context.Background())
	require.Error(t, err)

	var apiErr *client.APIError
	assert.False(t, errors.As(err, &apiErr))
}
