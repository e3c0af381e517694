package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupPipelineRouter(apiKey string) *gin.Engine {
	r := gin.New()
	r.Use(PipelineAuthMiddleware(apiKey))
	r.POST("/pipeline/messages", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func doRequest(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, http.NoBody)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseBody(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

func TestPipelineAuthMiddleware(t *testing.T) {
	tests := []struct {
		name          string
		configuredKey string
		requestKey    string
		wantStatus    int
		wantErrorCode string
	}{
		{name: "valid_api_key", configuredKey: "device-key", requestKey: "device-key", wantStatus: http.StatusOK},
		{name: "wrong_key", configuredKey: "device-key", requestKey: "other", wantStatus: http.StatusUnauthorized, wantErrorCode: "INVALID_API_KEY"},
		{name: "missing_key", configuredKey: "device-key", wantStatus: http.StatusUnauthorized, wantErrorCode: "INVALID_API_KEY"},
		{name: "prefix_rejected", configuredKey: "device-key", requestKey: "device", wantStatus: http.StatusUnauthorized, wantErrorCode: "INVALID_API_KEY"},
		{name: "not_configured", requestKey: "any", wantStatus: http.StatusServiceUnavailable, wantErrorCode: "INBOX_NOT_CONFIGURED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.requestKey != "" {
				headers[APIKeyHeader] = tt.requestKey
			}
			rec := doRequest(setupPipelineRouter(tt.configuredKey), http.MethodPost, "/pipeline/messages", headers)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantErrorCode != "" {
				if code := errorCode(t, rec); code != tt.wantErrorCode {
					t.Errorf("error code = %q, want %q", code, tt.wantErrorCode)
				}
				return
			}
			if status, _ := parseBody(t, rec)["status"].(string); status != "ok" {
				t.Errorf("expected handler to be reached, got status = %q", status)
			}
		})
	}
}
