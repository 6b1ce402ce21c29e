package bootstrap_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"healthtrack-backend/internal/bootstrap"
	"healthtrack-backend/internal/shared/config"
)

func buildApp(t *testing.T, geminiBaseURL string) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		Env:             "dev",
		JWTSecret:       "test-secret",
		TokenTTL:        time.Hour,
		CORSAllowOrigin: []string{"http://localhost:5173"},
		GeminiModel:     "gemini-1.5-flash",
		GeminiBaseURL:   geminiBaseURL,
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	if app.Backend != "memory" {
		t.Fatalf("expected memory backend without DATABASE_URL, got %s", app.Backend)
	}
	return app
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func registerUser(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	resp := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    email,
		"password": "hunter2secret",
		"name":     "Ana",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", resp.Code, resp.Body.String())
	}
	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode register: %v", err)
	}
	if out.AccessToken == "" || out.TokenType != "bearer" {
		t.Fatalf("unexpected auth payload: %+v", out)
	}
	return out.AccessToken
}

func uploadImage(t *testing.T, router *gin.Engine, token string) string {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("document_type", "image"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	fileWriter, err := writer.CreateFormFile("file", "scalp.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte{0x89, 0x50, 0x4E, 0x47}); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("upload status = %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		Document struct {
			ID string `json:"id"`
		} `json:"document"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode upload: %v", err)
	}
	if created.Document.ID == "" {
		t.Fatal("expected document id")
	}
	return created.Document.ID
}

func geminiStub(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
			},
		})
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
}

func TestHealthReportsBackend(t *testing.T) {
	app := buildApp(t, "http://unused.invalid")
	resp := doJSON(t, app.Router, http.MethodGet, "/api/v1/health", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("health status = %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"database":"memory"`) {
		t.Fatalf("health must report backend: %s", resp.Body.String())
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app := buildApp(t, "http://unused.invalid")
	resp := doJSON(t, app.Router, http.MethodGet, "/api/v1/documents", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "invalid_token") {
		t.Fatalf("body = %s", resp.Body.String())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app := buildApp(t, "http://unused.invalid")
	registerUser(t, app.Router, "ana@example.com")

	resp := doJSON(t, app.Router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "ana@example.com",
		"password": "wrong-password",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "invalid_credentials") {
		t.Fatalf("body = %s", resp.Body.String())
	}
}

func TestRegisterUploadAnalyzeDashboard(t *testing.T) {
	analysisJSON := `{"hair_count_estimate":"dense","baldness_zones":["crown"],` +
		`"risk_3_years":"low","risk_5_years":"low","risk_10_years":"medium",` +
		`"recommendations":["keep monitoring"],"confidence_score":0.8}`
	provider := geminiStub(t, analysisJSON)
	defer provider.Close()

	app := buildApp(t, provider.URL)
	router := app.Router

	token := registerUser(t, router, "ana@example.com")

	// Analysis without a stored credential is refused.
	docID := uploadImage(t, router, token)
	resp := doJSON(t, router, http.MethodPost, "/api/v1/analysis/hair", token, map[string]string{
		"document_id": docID,
	})
	if resp.Code != http.StatusBadRequest || !strings.Contains(resp.Body.String(), "missing_credential") {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodPut, "/api/v1/auth/gemini-key", token, map[string]string{
		"gemini_api_key": "user-key",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("gemini-key status = %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodPost, "/api/v1/analysis/hair", token, map[string]string{
		"document_id": docID,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("analysis status = %d: %s", resp.Code, resp.Body.String())
	}
	var analyzed struct {
		Analysis struct {
			Outcome string `json:"outcome"`
			Hair    *struct {
				Risk10 struct {
					Level string `json:"level"`
				} `json:"risk_10_years"`
			} `json:"hair_analysis"`
		} `json:"analysis"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&analyzed); err != nil {
		t.Fatalf("decode analysis: %v", err)
	}
	if analyzed.Analysis.Outcome != "parsed" || analyzed.Analysis.Hair == nil {
		t.Fatalf("unexpected analysis payload: %s", resp.Body.String())
	}
	if analyzed.Analysis.Hair.Risk10.Level != "medium" {
		t.Fatalf("risk level = %q", analyzed.Analysis.Hair.Risk10.Level)
	}

	// Document analysis on an image document is a type mismatch.
	resp = doJSON(t, router, http.MethodPost, "/api/v1/analysis/document", token, map[string]string{
		"document_id": docID,
	})
	if resp.Code != http.StatusBadRequest || !strings.Contains(resp.Body.String(), "type_mismatch") {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/dashboard", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d: %s", resp.Code, resp.Body.String())
	}
	var view struct {
		TotalDocuments    int `json:"total_documents"`
		AnalyzedDocuments int `json:"analyzed_documents"`
		RecentAnalyses    []struct {
			ID       string          `json:"id"`
			Analysis json.RawMessage `json:"analysis"`
		} `json:"recent_analyses"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if view.TotalDocuments != 1 || view.AnalyzedDocuments != 1 || len(view.RecentAnalyses) != 1 {
		t.Fatalf("unexpected dashboard: %+v", view)
	}
	if view.RecentAnalyses[0].ID != docID || len(view.RecentAnalyses[0].Analysis) == 0 {
		t.Fatalf("dashboard entry must embed the analysis: %+v", view.RecentAnalyses[0])
	}
}

func TestProviderOutageIsBadGateway(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer provider.Close()

	app := buildApp(t, provider.URL)
	router := app.Router

	token := registerUser(t, router, "ana@example.com")
	doJSON(t, router, http.MethodPut, "/api/v1/auth/gemini-key", token, map[string]string{
		"gemini_api_key": "user-key",
	})
	docID := uploadImage(t, router, token)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/analysis/hair", token, map[string]string{
		"document_id": docID,
	})
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "external_service_unavailable") {
		t.Fatalf("body = %s", resp.Body.String())
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	app := buildApp(t, "http://unused.invalid")
	router := app.Router
	token := registerUser(t, router, "ana@example.com")

	for i := 0; i < 2; i++ {
		resp := doJSON(t, router, http.MethodPost, "/api/v1/records", token, map[string]any{
			"record_type": "weight",
			"data":        map[string]any{"kg": 80 - i},
		})
		if resp.Code != http.StatusCreated {
			t.Fatalf("record create status = %d: %s", resp.Code, resp.Body.String())
		}
	}

	resp := doJSON(t, router, http.MethodGet, "/api/v1/records", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("records status = %d", resp.Code)
	}
	var out struct {
		Records []struct {
			RecordType string `json:"record_type"`
		} `json:"records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode records: %v", err)
	}
	if len(out.Records) != 2 {
		t.Fatalf("want 2 records, got %d", len(out.Records))
	}
}

func TestCrossUserDocumentIsNotFound(t *testing.T) {
	provider := geminiStub(t, "{}")
	defer provider.Close()

	app := buildApp(t, provider.URL)
	router := app.Router

	ownerToken := registerUser(t, router, "owner@example.com")
	intruderToken := registerUser(t, router, "intruder@example.com")

	docID := uploadImage(t, router, ownerToken)
	doJSON(t, router, http.MethodPut, "/api/v1/auth/gemini-key", intruderToken, map[string]string{
		"gemini_api_key": "user-key",
	})

	resp := doJSON(t, router, http.MethodPost, "/api/v1/analysis/hair", intruderToken, map[string]string{
		"document_id": docID,
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "document_not_found") {
		t.Fatalf("body = %s", resp.Body.String())
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	app := buildApp(t, "http://unused.invalid")
	token := registerUser(t, app.Router, "ana@example.com")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.WriteField("document_type", "spreadsheet")
	fw, _ := writer.CreateFormFile("file", "x.xlsx")
	fmt.Fprint(fw, "data")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest || !strings.Contains(resp.Body.String(), "unsupported_document_type") {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
}
