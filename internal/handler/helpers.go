package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/skillmatch/internal/middleware"
	appErr "github.com/xxxsen/skillmatch/internal/pkg/errors"
	"github.com/xxxsen/skillmatch/internal/pkg/response"
	"github.com/xxxsen/skillmatch/internal/recommend"
)

const (
	msgUnexpected  = "An unexpected error occurred"
	maxRequestBody = 1 << 20
)

func getUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserIDKey)
}

func requestLogger(c *gin.Context) *zap.Logger {
	return logutil.GetLogger(c.Request.Context()).With(
		zap.String("request_id", c.GetString(middleware.ContextRequestIDKey)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logger := requestLogger(c).With(zap.String("user_id", getUserID(c)), zap.Error(err))
	switch {
	case errors.Is(err, recommend.ErrInvalidInput):
		logger.Warn("invalid skills input")
		response.Error(c, http.StatusBadRequest, recommend.InvalidInputMessage)
	case errors.Is(err, appErr.ErrUnauthorized):
		logger.Warn("request unauthorized")
		response.Error(c, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, appErr.ErrForbidden):
		response.Error(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, http.StatusNotFound, "not found")
	case errors.Is(err, appErr.ErrInvalid):
		logger.Warn("invalid request")
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, appErr.ErrConflict):
		response.Error(c, http.StatusConflict, "conflict")
	case errors.Is(err, appErr.ErrTooMany):
		response.Error(c, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
	case errors.Is(err, appErr.ErrDisabled):
		response.Error(c, http.StatusServiceUnavailable, "accounts are disabled on this server")
	default:
		logger.Error("request failed")
		response.Error(c, http.StatusInternalServerError, msgUnexpected)
	}
}

// strictBody decodes a JSON object and rejects keys outside allowed. The
// second return is false once a 400 has been written.
func strictBody(c *gin.Context, required string, allowed ...string) (map[string]json.RawMessage, bool) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRequestBody))
	if err != nil {
		response.Error(c, http.StatusBadRequest, fmt.Sprintf("Invalid JSON payload or '%s' missing", required))
		return nil, false
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(raw), &body); err != nil || body == nil {
		requestLogger(c).Warn("invalid json payload", zap.Error(err))
		response.Error(c, http.StatusBadRequest, fmt.Sprintf("Invalid JSON payload or '%s' missing", required))
		return nil, false
	}
	if _, ok := body[required]; !ok {
		requestLogger(c).Warn("required field missing", zap.String("field", required))
		response.Error(c, http.StatusBadRequest, fmt.Sprintf("Invalid JSON payload or '%s' missing", required))
		return nil, false
	}
	allow := make(map[string]struct{}, len(allowed)+1)
	allow[required] = struct{}{}
	for _, k := range allowed {
		allow[k] = struct{}{}
	}
	var extra []string
	for k := range body {
		if _, ok := allow[k]; !ok {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		requestLogger(c).Warn("unexpected fields in request", zap.Strings("fields", extra))
		response.Error(c, http.StatusBadRequest, fmt.Sprintf("Unexpected fields: %s", strings.Join(extra, ", ")))
		return nil, false
	}
	return body, true
}

func decodeStringList(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, true
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}
