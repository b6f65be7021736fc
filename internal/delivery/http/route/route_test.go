package route_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evandrarf/learnquest-be/internal/config"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/handler"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/middleware"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/repository"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/route"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/usecase"
	"github.com/evandrarf/learnquest-be/internal/pkg/dbretry"
	"github.com/evandrarf/learnquest-be/internal/pkg/llm"
	"github.com/evandrarf/learnquest-be/internal/pkg/testutil"
	"github.com/evandrarf/learnquest-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const internalKey = "worker-secret"

type stubSolver struct{}

func (stubSolver) ModelID() string { return "stub" }

func (stubSolver) Solve(context.Context, llm.SolveRequest) (*llm.Solution, error) {
	return &llm.Solution{
		Solution:    "x = 4",
		Explanation: "isolate x",
		Steps:       []llm.Step{{Title: "Subtract", Content: "2x = 8"}},
		Confidence:  0.8,
		Model:       "stub",
	}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
}

type apiClient struct {
	t   *testing.T
	app *fiber.App
	db  *gorm.DB
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()

	db := testutil.SeededDB(t)
	log := testutil.QuietLogger()

	v := viper.New()
	config.SetDefaults(v)
	v.Set("api.internal_key", internalKey)

	catalogRepo := repository.NewCatalogRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	retry := dbretry.Config{MaxAttempts: 1}

	catalog := usecase.NewCatalogUsecase(usecase.CatalogConfig{DB: db, Repository: catalogRepo, Log: log})
	gamification := usecase.NewGamificationUsecase(usecase.GamificationConfig{
		DB:           db,
		Progress:     progressRepo,
		Submissions:  submissionRepo,
		Catalog:      catalogRepo,
		Achievements: repository.NewAchievementRepository(db),
		Log:          log,
		Retry:        retry,
	})
	submissions := usecase.NewSubmissionUsecase(usecase.SubmissionConfig{
		DB:           db,
		Repository:   submissionRepo,
		CatalogRepo:  catalogRepo,
		ProgressRepo: progressRepo,
		Catalog:      catalog,
		Gamification: gamification,
		Solver:       stubSolver{},
		Log:          log,
		Retry:        retry,
	})

	validator := validate.NewValidator()
	app := config.NewAPI(v, log)
	route.Setup(&route.RouteConfig{
		Api:               app,
		Middleware:        middleware.NewMiddleware(&middleware.MiddlewareConfig{Log: log, Config: v}),
		CatalogHandler:    handler.NewCatalogHandler(validator, log, catalog),
		SubmissionHandler: handler.NewSubmissionHandler(validator, log, submissions),
		ProgressHandler:   handler.NewProgressHandler(validator, log, gamification),
	})

	return &apiClient{t: t, app: app, db: db}
}

func (c *apiClient) do(method, path string, body any, headers map[string]string) (int, envelope) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer res.Body.Close()

	var env envelope
	raw, err := io.ReadAll(res.Body)
	require.NoError(c.t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(c.t, json.Unmarshal(raw, &env))
	}
	return res.StatusCode, env
}

func asUser(id uuid.UUID) map[string]string {
	return map[string]string{middleware.UserIDHeader: id.String()}
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestHealthz(t *testing.T) {
	api := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res, err := api.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestUserHeaderRequired(t *testing.T) {
	api := newAPI(t)

	status, env := api.do(http.MethodGet, "/progress", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)

	status, _ = api.do(http.MethodGet, "/submissions", nil, map[string]string{middleware.UserIDHeader: "not-a-uuid"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPublicCatalog(t *testing.T) {
	api := newAPI(t)

	status, env := api.do(http.MethodGet, "/subjects", nil, nil)
	require.Equal(t, http.StatusOK, status)
	subjects := decode[[]map[string]any](t, env.Data)
	assert.Len(t, subjects, 6)

	status, env = api.do(http.MethodGet, "/prompts/select?subject=Mathematics&input_type=text&difficulty=hard", nil, nil)
	require.Equal(t, http.StatusOK, status)
	tpl := decode[map[string]any](t, env.Data)
	assert.Equal(t, "hard", tpl["difficulty"])
	assert.Contains(t, []any{"text", "any"}, tpl["input_type"])

	status, env = api.do(http.MethodGet, "/prompts/select?subject=Astrology", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.Empty(t, env.Data)

	status, env = api.do(http.MethodGet, "/achievements", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, decode[[]map[string]any](t, env.Data))
}

func TestValidationErrorsAreFieldMaps(t *testing.T) {
	api := newAPI(t)
	user := uuid.New()

	status, env := api.do(http.MethodPost, "/submissions", map[string]any{
		"subject":    "Mathematics",
		"input_type": "video",
	}, asUser(user))
	require.Equal(t, http.StatusBadRequest, status)

	fields := decode[map[string]string](t, env.Error)
	assert.Contains(t, fields, "input_type")
}

func TestSubmissionFlow(t *testing.T) {
	api := newAPI(t)
	user := uuid.New()

	status, _ := api.do(http.MethodPut, "/profile", map[string]any{"display_name": "Rani", "grade_level": "high"}, asUser(user))
	require.Equal(t, http.StatusOK, status)

	status, env := api.do(http.MethodPost, "/submissions", map[string]any{
		"subject":    "Mathematics",
		"input_type": "text",
		"input_text": "2x + 3 = 11",
	}, asUser(user))
	require.Equal(t, http.StatusCreated, status)
	created := decode[map[string]any](t, env.Data)
	id := created["id"].(string)
	assert.Equal(t, "pending", created["status"])
	assert.NotEmpty(t, created["prompt_template_id"])

	// other users cannot see it
	status, _ = api.do(http.MethodGet, "/submissions/"+id, nil, asUser(uuid.New()))
	assert.Equal(t, http.StatusForbidden, status)

	status, env = api.do(http.MethodPost, "/submissions/"+id+"/solve", nil, asUser(user))
	require.Equal(t, http.StatusOK, status)
	solved := decode[map[string]any](t, env.Data)
	assert.Equal(t, "completed", solved["status"])
	assert.Equal(t, "x = 4", solved["solution"])
	assert.EqualValues(t, 20, solved["points_awarded"])

	status, env = api.do(http.MethodGet, "/progress", nil, asUser(user))
	require.Equal(t, http.StatusOK, status)
	progress := decode[map[string]any](t, env.Data)
	assert.EqualValues(t, 1, progress["problems_solved"])
	assert.EqualValues(t, 1, progress["current_streak"])

	status, env = api.do(http.MethodPost, "/submissions/"+id+"/rating", map[string]any{"rating": 5}, asUser(user))
	require.Equal(t, http.StatusOK, status)
	rated := decode[map[string]any](t, env.Data)
	assert.EqualValues(t, 5, rated["rating"])
	assert.EqualValues(t, 20, rated["points_awarded"])

	status, _ = api.do(http.MethodPost, "/submissions/"+id+"/rating", map[string]any{"rating": 9}, asUser(user))
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = api.do(http.MethodGet, "/submissions?status=completed", nil, asUser(user))
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)
	meta := decode[map[string]any](t, env.Meta)
	assert.EqualValues(t, 1, meta["total"])

	status, env = api.do(http.MethodPost, "/submissions/"+id+"/archive", nil, asUser(user))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "archived", decode[map[string]any](t, env.Data)["status"])

	status, env = api.do(http.MethodGet, "/achievements/me", nil, asUser(user))
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, decode[[]map[string]any](t, env.Data))
}

func TestInternalEndpointsNeedKey(t *testing.T) {
	api := newAPI(t)
	user := uuid.New()

	status, _ := api.do(http.MethodPut, "/profile", map[string]any{"display_name": "Bima"}, asUser(user))
	require.Equal(t, http.StatusOK, status)

	status, env := api.do(http.MethodPost, "/submissions", map[string]any{
		"subject":       "Physics",
		"input_type":    "text",
		"input_text":    "A ball falls for 2s, how far?",
		"bypass_prompt": true,
	}, asUser(user))
	require.Equal(t, http.StatusCreated, status)
	id := decode[map[string]any](t, env.Data)["id"].(string)

	body := map[string]any{"solution": "19.6 m"}

	status, _ = api.do(http.MethodPost, "/internal/submissions/"+id+"/complete", body, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = api.do(http.MethodPost, "/internal/submissions/"+id+"/complete", body, map[string]string{middleware.InternalKeyHeader: "wrong"})
	assert.Equal(t, http.StatusForbidden, status)

	worker := map[string]string{middleware.InternalKeyHeader: internalKey}

	// pending cannot jump straight to completed
	status, _ = api.do(http.MethodPost, "/internal/submissions/"+id+"/complete", body, worker)
	assert.Equal(t, http.StatusConflict, status)

	// worker picked it up
	require.NoError(t, api.db.Exec("UPDATE submissions SET status = ? WHERE id = ?", "processing", id).Error)

	status, env = api.do(http.MethodPost, "/internal/submissions/"+id+"/complete", body, worker)
	require.Equal(t, http.StatusOK, status)
	completed := decode[map[string]any](t, env.Data)
	assert.Equal(t, "completed", completed["status"])
	assert.EqualValues(t, 20, completed["points_awarded"])

	status, _ = api.do(http.MethodPost, "/internal/submissions/"+id+"/fail", map[string]any{"message": "late failure"}, worker)
	assert.Equal(t, http.StatusConflict, status)

	status, env = api.do(http.MethodPost, "/internal/submissions/"+id+"/fail", map[string]any{}, worker)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, decode[map[string]string](t, env.Error), "message")
}

func TestUnknownSubmission(t *testing.T) {
	api := newAPI(t)

	status, _ := api.do(http.MethodGet, "/submissions/"+uuid.NewString(), nil, asUser(uuid.New()))
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = api.do(http.MethodGet, "/submissions/nope", nil, asUser(uuid.New()))
	assert.Equal(t, http.StatusBadRequest, status)
}
