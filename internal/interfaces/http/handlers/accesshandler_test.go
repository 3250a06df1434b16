package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atrium/internal/domain/access"
	"atrium/internal/shared/errors"
)

type mockEvaluateAccessUC struct {
	decision access.Decision
	err      error
	gotID    uint
}

func (m *mockEvaluateAccessUC) Execute(ctx context.Context, companyID uint) (access.Decision, error) {
	m.gotID = companyID
	return m.decision, m.err
}

func performRequest(t *testing.T, engine *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newAccessTestEngine(uc *mockEvaluateAccessUC) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handler := NewAccessHandler(uc)
	engine.GET("/api/companies/:id/access", handler.CheckAccess)
	return engine
}

func TestAccessHandler_CheckAccess_Allowed(t *testing.T) {
	uc := &mockEvaluateAccessUC{decision: access.Granted()}
	engine := newAccessTestEngine(uc)

	w := performRequest(t, engine, http.MethodGet, "/api/companies/42/access", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(42), uc.gotID)

	resp := decodeResponse(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["allowed"])
	assert.NotContains(t, data, "reason")
}

func TestAccessHandler_CheckAccess_Denied(t *testing.T) {
	uc := &mockEvaluateAccessUC{decision: access.Denied(access.ReasonBlockedPartner)}
	engine := newAccessTestEngine(uc)

	w := performRequest(t, engine, http.MethodGet, "/api/companies/42/access", "", nil)

	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, false, data["allowed"])
	assert.Equal(t, "ERR_ACCESS_BLOCKED_PARTNER", data["reason"])
}

func TestAccessHandler_CheckAccess_CompanyNotFound(t *testing.T) {
	uc := &mockEvaluateAccessUC{
		decision: access.Denied(access.ReasonBlockedPlatform),
		err:      errors.NewNotFoundError("company not found"),
	}
	engine := newAccessTestEngine(uc)

	w := performRequest(t, engine, http.MethodGet, "/api/companies/999/access", "", nil)

	require.Equal(t, http.StatusNotFound, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, false, resp["success"])
}

func TestAccessHandler_CheckAccess_InvalidID(t *testing.T) {
	uc := &mockEvaluateAccessUC{decision: access.Granted()}
	engine := newAccessTestEngine(uc)

	w := performRequest(t, engine, http.MethodGet, "/api/companies/abc/access", "", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, uc.gotID)
}
