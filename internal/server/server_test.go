package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"saas-manager-be/internal/bootstrap"
	"saas-manager-be/internal/config"
	"saas-manager-be/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        filepath.Join(t.TempDir(), "app.log"),
			CorsAllowedOrigins: "http://localhost:4200",
		},
		Cache:  config.CacheConfig{Driver: "memory", TTL: time.Minute, Prefix: "test"},
		Events: config.EventsConfig{SubjectPrefix: "events", StreamName: "EVENTS", CatalogTopic: "CATALOG_CHANGED", ConsumerName: "test"},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *fiber.App {
	t.Helper()
	container := bootstrap.NewContainer(testutil.SetupTestDB(t), cfg)
	t.Cleanup(container.Close)
	return New(cfg, container).GetApp()
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}, headers ...string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestServer_HealthAndLookups(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	code, _ := do(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)

	code, env := do(t, app, http.MethodGet, "/api/v1/features/units", nil)
	assert.Equal(t, http.StatusOK, code)
	var units []map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &units))
	assert.Len(t, units, 15)

	code, env = do(t, app, http.MethodGet, "/api/v1/features/types", nil)
	assert.Equal(t, http.StatusOK, code)
	var types []map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &types))
	assert.Len(t, types, 6)

	code, env = do(t, app, http.MethodGet, "/api/v1/unknown", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, http.StatusNotFound, env.StatusCode)
}

func TestServer_FeatureAndPlanFlow(t *testing.T) {
	app := newTestApp(t, testConfig(t))
	appId := uuid.New()
	planId := uuid.New()

	code, env := do(t, app, http.MethodPost, "/api/v1/application-features", map[string]interface{}{
		"key":       "storage",
		"name":      "Stockage",
		"unit":      "gb",
		"is_global": true,
		"custom_fields": []map[string]interface{}{
			{"name": "quota", "display_name": "Quota", "data_type": "number", "required": true},
		},
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var feature struct {
		Id           uuid.UUID `json:"id"`
		CustomFields []struct {
			Id uuid.UUID `json:"id"`
		} `json:"custom_fields"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &feature))
	require.Len(t, feature.CustomFields, 1)

	code, _ = do(t, app, http.MethodPost, "/api/v1/application-features", map[string]interface{}{
		"key": "storage", "name": "Again", "is_global": true,
	})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = do(t, app, http.MethodPost, "/api/v1/application-features", map[string]interface{}{"name": "No key"})
	assert.Equal(t, http.StatusBadRequest, code)

	configure := map[string]interface{}{
		"features": []map[string]interface{}{{
			"feature_id": feature.Id,
			"status":     "limited",
			"field_values": []map[string]interface{}{
				{"custom_field_id": feature.CustomFields[0].Id, "value": 50},
			},
		}},
	}
	code, env = do(t, app, http.MethodPost, "/api/v1/plans/"+planId.String()+"/features/bulk?applicationId="+appId.String(), configure)
	require.Equal(t, http.StatusOK, code, env.Message)

	code, _ = do(t, app, http.MethodGet, "/api/v1/plans/"+planId.String()+"/features", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = do(t, app, http.MethodGet, "/api/v1/plans/"+planId.String()+"/features?applicationId="+appId.String(), nil)
	require.Equal(t, http.StatusOK, code)
	var planFeatures []struct {
		Status      string `json:"status"`
		FieldValues []struct {
			DisplayValue string `json:"display_value"`
		} `json:"field_values"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &planFeatures))
	require.Len(t, planFeatures, 1)
	assert.Equal(t, "limited", planFeatures[0].Status)
	require.Len(t, planFeatures[0].FieldValues, 1)
	assert.Equal(t, "50 GB", planFeatures[0].FieldValues[0].DisplayValue)

	code, _ = do(t, app, http.MethodPatch, "/api/v1/plans/"+planId.String()+"/features/order?applicationId="+appId.String(), map[string]interface{}{
		"orders": []map[string]interface{}{{"feature_id": uuid.New(), "sort_order": 1}},
	})
	assert.Equal(t, http.StatusNotFound, code)

	code, env = do(t, app, http.MethodPost, "/api/v1/plan-feature-values", map[string]interface{}{
		"plan_id": planId, "feature_id": feature.Id, "value": -1,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var value struct {
		IsUnlimited  bool   `json:"is_unlimited"`
		DisplayValue string `json:"display_value"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &value))
	assert.True(t, value.IsUnlimited)
	assert.Equal(t, "Illimité", value.DisplayValue)

	code, env = do(t, app, http.MethodDelete, "/api/v1/application-features/"+feature.Id.String(), nil)
	assert.Equal(t, http.StatusOK, code, env.Message)

	code, env = do(t, app, http.MethodGet, "/api/v1/plan-feature-values/plan/"+planId.String(), nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, "[]", string(env.Data))
}

func TestServer_ListPagination(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	for i, key := range []string{"users", "storage", "emails"} {
		code, env := do(t, app, http.MethodPost, "/api/v1/application-features", map[string]interface{}{
			"key": key, "name": key, "is_global": true, "sort_order": i,
		})
		require.Equal(t, http.StatusCreated, code, env.Message)
	}

	var features []struct {
		Key string `json:"key"`
	}
	code, env := do(t, app, http.MethodGet, "/api/v1/application-features?limit=2&offset=1", nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	require.NoError(t, json.Unmarshal(env.Data, &features))
	require.Len(t, features, 2)
	assert.Equal(t, "storage", features[0].Key)
	assert.Equal(t, "emails", features[1].Key)

	for _, path := range []string{
		"/api/v1/application-features?limit=-1",
		"/api/v1/application-features?limit=ten",
		"/api/v1/application-features?limit=100000",
		"/api/v1/plan-feature-values?offset=-3",
	} {
		code, _ = do(t, app, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, code, path)
	}

	code, env = do(t, app, http.MethodGet, "/api/v1/plan-feature-values?limit=5", nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.JSONEq(t, "[]", string(env.Data))
}

func TestServer_AuthGuard(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth = config.AuthConfig{Enabled: true, JwtSecret: "secret"}
	app := newTestApp(t, cfg)

	code, _ := do(t, app, http.MethodGet, "/api/v1/features/units", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	sign := func(role string) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"role": role,
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)
		return "Bearer " + signed
	}

	code, _ = do(t, app, http.MethodGet, "/api/v1/features/units", nil, "Authorization", sign("user"))
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = do(t, app, http.MethodGet, "/api/v1/features/units", nil, "Authorization", sign("admin"))
	assert.Equal(t, http.StatusOK, code)

	code, _ = do(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)
}
