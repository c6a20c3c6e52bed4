package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/stackadvisor-backend/internal/platform/ctxutil"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
	"github.com/yungbote/stackadvisor-backend/internal/services"
)

type stubAuth struct {
	services.AuthService
	valid  string
	userID uuid.UUID
}

func (s stubAuth) SetContextFromToken(ctx context.Context, tok string) (context.Context, error) {
	if tok != s.valid {
		return ctx, errors.New("bad token")
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: s.userID}), nil
}

func (s stubAuth) GetTokenTTL() time.Duration { return time.Hour }

func authRouter(auth services.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewAuthMiddleware(logger.NewNop(), auth).RequireAuth())
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, ctxutil.UserID(c.Request.Context()).String())
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	id := uuid.New()
	r := authRouter(stubAuth{valid: "good", userID: id})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"ok", "Bearer good", http.StatusOK},
		{"case-insensitive scheme", "bearer good", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status: got=%d want=%d body=%s", rec.Code, tc.status, rec.Body.String())
			}
			if tc.status == http.StatusOK {
				if rec.Body.String() != id.String() {
					t.Fatalf("user id not attached: %s", rec.Body.String())
				}
				return
			}
			var body struct {
				Error struct {
					Message string `json:"message"`
					Code    string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error.Message != "Unauthorized" || body.Error.Code != "unauthorized" {
				t.Fatalf("unexpected envelope: %+v", body)
			}
		})
	}
}

func TestRequireAuthRejectsNilUser(t *testing.T) {
	r := authRouter(stubAuth{valid: "good", userID: uuid.Nil})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got=%d", rec.Code)
	}
}

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/x", func(c *gin.Context) {
		td := ctxutil.GetTraceData(c.Request.Context())
		c.String(http.StatusOK, td.TraceID+"|"+td.RequestID)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	req.Header.Set(HeaderTraceID, "trace-abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Body.String() != "trace-abc|req-123" {
		t.Fatalf("inbound ids not propagated: %s", rec.Body.String())
	}
	if rec.Header().Get(HeaderRequestID) != "req-123" {
		t.Fatalf("request id not echoed")
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, strings.Repeat("a", 500))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	parts := strings.Split(rec.Body.String(), "|")
	if len(parts) != 2 || len(parts[1]) != 36 {
		t.Fatalf("oversized request id should be replaced: %q", rec.Body.String())
	}
	if parts[0] != parts[1] {
		t.Fatalf("trace id should fall back to the request id: %q", rec.Body.String())
	}
}

func TestInboundID(t *testing.T) {
	cases := map[string]string{
		"":            "",
		"  abc  ":     "abc",
		"has space":   "",
		"tab\tinside": "",
		"ünïcode":     "",
		"ok-123_x.y":  "ok-123_x.y",
	}
	for in, want := range cases {
		if got := inboundID(in); got != want {
			t.Fatalf("inboundID(%q)=%q want %q", in, got, want)
		}
	}
}
