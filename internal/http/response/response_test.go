package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/stackadvisor-backend/internal/platform/apierr"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) { RespondErr(c, logger.NewNop(), err) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w
}

func TestRespondErr(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
		wantAuth   string
	}{
		{"validation", apierr.Validation("Project name is required"), http.StatusBadRequest, apierr.CodeValidation, "Project name is required", ""},
		{"wrapped not found", fmt.Errorf("load: %w", apierr.NotFound("Project not found")), http.StatusNotFound, apierr.CodeNotFound, "Project not found", ""},
		{"unauthorized", apierr.Unauthorized("Invalid email or password"), http.StatusUnauthorized, apierr.CodeUnauthorized, "Invalid email or password", "Bearer"},
		{"internal hides cause", apierr.Internal(errors.New("pq: connection refused")), http.StatusInternalServerError, apierr.CodeInternal, msgInternal, ""},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, apierr.CodeInternal, msgInternal, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := respond(t, tt.err)
			if w.Code != tt.wantStatus {
				t.Fatalf("status: want %d, got %d", tt.wantStatus, w.Code)
			}
			var env ErrorEnvelope
			if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Error.Code != tt.wantCode || env.Error.Message != tt.wantMsg {
				t.Fatalf("envelope: got %+v", env.Error)
			}
			if got := w.Header().Get("WWW-Authenticate"); got != tt.wantAuth {
				t.Fatalf("WWW-Authenticate: want %q, got %q", tt.wantAuth, got)
			}
		})
	}
}
