package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/stackadvisor-backend/internal/platform/apierr"
	"github.com/yungbote/stackadvisor-backend/internal/platform/ctxutil"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
)

const msgInternal = "Internal server error"

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondErr maps a service error to the envelope. Anything that is not an
// apierr client error is logged and surfaced generically.
func RespondErr(c *gin.Context, log *logger.Logger, err error) {
	if e, ok := apierr.As(err); ok && e.Status < http.StatusInternalServerError {
		if apierr.Is(err, apierr.CodeUnauthorized) {
			c.Header("WWW-Authenticate", "Bearer")
		}
		RespondError(c, e.Status, e.Code, e)
		return
	}
	if log != nil {
		fields := []interface{}{"path", c.FullPath(), "error", err}
		if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
			fields = append(fields, "trace_id", td.TraceID, "request_id", td.RequestID)
		}
		log.Error("request failed", fields...)
	}
	c.JSON(http.StatusInternalServerError, ErrorEnvelope{
		Error: APIError{Message: msgInternal, Code: apierr.CodeInternal},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
