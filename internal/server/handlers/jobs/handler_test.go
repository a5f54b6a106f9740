package jobs_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apiarycd/memberships/internal/jobs"
	handler "github.com/apiarycd/memberships/internal/server/handlers/jobs"
	"github.com/apiarycd/memberships/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestHandler_Get(t *testing.T) {
	logger := zaptest.NewLogger(t)
	repo, err := jobs.NewRepository(storage.NewMemoryProvider(logger))
	require.NoError(t, err)
	svc := jobs.NewService(repo, logger)

	status, err := svc.Create(context.Background(), 1)
	require.NoError(t, err)

	app := fiber.New()
	handler.NewHandler(svc, logger).Register(app)

	tests := []struct {
		name string
		path string
		code int
	}{
		{name: "existing", path: "/jobs/" + status.UUID, code: http.StatusOK},
		{name: "unknown", path: "/jobs/" + uuid.NewString(), code: http.StatusNotFound},
		{name: "malformed", path: "/jobs/not-a-uuid", code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.code, resp.StatusCode)
			if tt.code != http.StatusOK {
				return
			}

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			var got handler.StatusResponse
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, status.UUID, got.UUID)
			assert.Equal(t, string(jobs.StatePending), got.State)
		})
	}
}
