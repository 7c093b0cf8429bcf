package apihandlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/OkunrinmetaWebDevelopment/AphiniTi-Profile-Answers/pkg/answers"
	jwthandling "github.com/OkunrinmetaWebDevelopment/AphiniTi-Profile-Answers/pkg/jwt-handling"
	"github.com/gin-gonic/gin"
)

const testTokenSignKey = "test-sign-key"

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service := answers.NewAnswerService(answers.NewMemoryStore(), 5)
	handlers := NewHTTPHandler(testTokenSignKey, service)

	router := gin.New()
	router.GET("/", HealthCheckHandle)
	v1Root := router.Group("/v1")
	handlers.AddAnswersAPI(v1Root)
	return router
}

func authHeaderForUser(t *testing.T, userID string) string {
	t.Helper()
	token, err := jwthandling.GenerateNewUserToken(time.Hour, userID, nil, testTokenSignKey)
	if err != nil {
		t.Fatalf("cannot generate test token: %v", err)
	}
	return "Bearer " + token
}

func performRequest(router *gin.Engine, method string, path string, body string, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("cannot decode response body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestAnswersAPIRequiresAuth(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		name       string
		authHeader string
	}{
		{name: "missing header", authHeader: ""},
		{name: "garbage token", authHeader: "Bearer not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodGet, "/v1/ai-answers", "", tt.authHeader)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestSaveAnswersEndpoint(t *testing.T) {
	router := setupTestRouter(t)
	auth := authHeaderForUser(t, "u1")

	w := performRequest(router, http.MethodPost, "/v1/ai-answers", `{"answers": {"1": "I value honesty", "2": "Hiking"}}`, auth)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 on first save, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Errorf("expected success true, got %v", body["success"])
	}
	if body["total_questions"] != float64(2) {
		t.Errorf("expected 2 total questions, got %v", body["total_questions"])
	}

	w = performRequest(router, http.MethodPost, "/v1/ai-answers", `{"answers": {"3": "Reading"}}`, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on merge, got %d: %s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	mergedAnswers, ok := body["answers"].(map[string]interface{})
	if !ok || len(mergedAnswers) != 3 {
		t.Errorf("expected 3 merged answers, got %v", body["answers"])
	}
}

func TestSaveAnswersEndpointRejectsBadPayloads(t *testing.T) {
	router := setupTestRouter(t)
	auth := authHeaderForUser(t, "u1")

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "invalid json", body: `{"answers": `},
		{name: "non string answer value", body: `{"answers": {"1": 42}}`},
		{name: "empty answers map", body: `{"answers": {}}`},
		{name: "missing answers field", body: `{"other": {}}`},
		{name: "whitespace question id", body: `{"answers": {"  ": "x"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/v1/ai-answers", tt.body, auth)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestGetAnswersEndpoint(t *testing.T) {
	router := setupTestRouter(t)
	auth := authHeaderForUser(t, "u1")

	w := performRequest(router, http.MethodGet, "/v1/ai-answers", "", auth)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without record, got %d", w.Code)
	}

	performRequest(router, http.MethodPost, "/v1/ai-answers", `{"answers": {"1": "a"}}`, auth)

	w = performRequest(router, http.MethodGet, "/v1/ai-answers", "", auth)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["total_questions"] != float64(1) {
		t.Errorf("expected 1 total question, got %v", body["total_questions"])
	}

	t.Run("records are scoped per user", func(t *testing.T) {
		otherAuth := authHeaderForUser(t, "u2")
		w := performRequest(router, http.MethodGet, "/v1/ai-answers", "", otherAuth)
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404 for another user, got %d", w.Code)
		}
	})
}

func TestDeleteAnswersEndpoint(t *testing.T) {
	router := setupTestRouter(t)
	auth := authHeaderForUser(t, "u1")

	w := performRequest(router, http.MethodDelete, "/v1/ai-answers", "", auth)
	if w.Code != http.StatusOK {
		t.Fatalf("expected delete without record to succeed, got %d", w.Code)
	}

	performRequest(router, http.MethodPost, "/v1/ai-answers", `{"answers": {"1": "a"}}`, auth)

	w = performRequest(router, http.MethodDelete, "/v1/ai-answers", "", auth)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = performRequest(router, http.MethodGet, "/v1/ai-answers", "", auth)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

type brokenAnswerStore struct {
	err error
}

func (s *brokenAnswerStore) Get(_ context.Context, _ string) (answers.AnswerRecord, error) {
	return answers.AnswerRecord{}, s.err
}

func (s *brokenAnswerStore) Save(_ context.Context, _ answers.AnswerRecord) (answers.AnswerRecord, error) {
	return answers.AnswerRecord{}, s.err
}

func (s *brokenAnswerStore) Delete(_ context.Context, _ string) error {
	return s.err
}

type contendedAnswerStore struct {
	*answers.MemoryStore
}

func (s *contendedAnswerStore) Save(_ context.Context, _ answers.AnswerRecord) (answers.AnswerRecord, error) {
	return answers.AnswerRecord{}, answers.ErrRevisionMismatch
}

func setupTestRouterWithStore(t *testing.T, store answers.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service := answers.NewAnswerService(store, 3)
	handlers := NewHTTPHandler(testTokenSignKey, service)

	router := gin.New()
	v1Root := router.Group("/v1")
	handlers.AddAnswersAPI(v1Root)
	return router
}

func TestAnswersEndpointsWhenStoreIsDown(t *testing.T) {
	router := setupTestRouterWithStore(t, &brokenAnswerStore{err: context.DeadlineExceeded})
	auth := authHeaderForUser(t, "u1")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "save", method: http.MethodPost, path: "/v1/ai-answers", body: `{"answers": {"1": "a"}}`},
		{name: "get", method: http.MethodGet, path: "/v1/ai-answers", body: ""},
		{name: "delete", method: http.MethodDelete, path: "/v1/ai-answers", body: ""},
		{name: "update single", method: http.MethodPut, path: "/v1/ai-answers/1", body: `{"answer": "a"}`},
		{name: "stats", method: http.MethodGet, path: "/v1/ai-answers/stats", body: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, tt.method, tt.path, tt.body, auth)
			if w.Code != http.StatusServiceUnavailable {
				t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
			}
			body := decodeBody(t, w)
			if body["error"] != "storage temporarily unavailable" {
				t.Errorf("unexpected error body: %v", body["error"])
			}
		})
	}
}

func TestSaveAnswersEndpointUnderUnresolvableContention(t *testing.T) {
	router := setupTestRouterWithStore(t, &contendedAnswerStore{answers.NewMemoryStore()})
	auth := authHeaderForUser(t, "u1")

	w := performRequest(router, http.MethodPost, "/v1/ai-answers", `{"answers": {"1": "a"}}`, auth)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["error"] != "too many concurrent updates, please retry" {
		t.Errorf("unexpected error body: %v", body["error"])
	}
}

func TestUpdateSingleAnswerEndpoint(t *testing.T) {
	router := setupTestRouter(t)
	auth := authHeaderForUser(t, "u1")

	w := performRequest(router, http.MethodPut, "/v1/ai-answers/3", `{"answer": "Looking for a serious relationship"}`, auth)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 when the update creates the record, got %d: %s", w.Code, w.Body.String())
	}

	w = performRequest(router, http.MethodPut, "/v1/ai-answers/3", `{"answer": "updated"}`, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	updatedAnswers, ok := body["answers"].(map[string]interface{})
	if !ok || updatedAnswers["3"] != "updated" {
		t.Errorf("expected overwritten answer, got %v", body["answers"])
	}
	if body["total_questions"] != float64(1) {
		t.Errorf("expected 1 total question, got %v", body["total_questions"])
	}

	t.Run("rejects whitespace question id", func(t *testing.T) {
		w := performRequest(router, http.MethodPut, "/v1/ai-answers/%20%20", `{"answer": "x"}`, auth)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("rejects empty body", func(t *testing.T) {
		w := performRequest(router, http.MethodPut, "/v1/ai-answers/3", "", auth)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestAnswerStatsEndpoint(t *testing.T) {
	router := setupTestRouter(t)
	auth := authHeaderForUser(t, "u1")

	w := performRequest(router, http.MethodGet, "/v1/ai-answers/stats", "", auth)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without record, got %d", w.Code)
	}

	performRequest(router, http.MethodPost, "/v1/ai-answers", `{"answers": {"1": "a", "2": "  "}}`, auth)

	w = performRequest(router, http.MethodGet, "/v1/ai-answers/stats", "", auth)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["total_questions"] != float64(2) {
		t.Errorf("expected 2 total questions, got %v", body["total_questions"])
	}
	if body["completed_questions"] != float64(1) {
		t.Errorf("expected 1 completed question, got %v", body["completed_questions"])
	}
	if body["completion_percentage"] != float64(50) {
		t.Errorf("expected 50 percent, got %v", body["completion_percentage"])
	}
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := performRequest(router, http.MethodGet, "/", "", "")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
