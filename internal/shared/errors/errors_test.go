package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/home/store/status", handler)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/home/store/status", nil))
	return rec
}

func TestRespond_FillsInstanceAndContentType(t *testing.T) {
	rec := serve(t, func(c *gin.Context) {
		Respond(c, ErrUnauthorized.WithDetail("login required"))
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var body ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, TypeUnauthorized, body.Type)
	require.Equal(t, "/home/store/status", body.Instance)
	require.Equal(t, "login required", body.Detail)
}

func TestRespondError_UnwrapsProblems(t *testing.T) {
	rec := serve(t, func(c *gin.Context) {
		RespondError(c, fmt.Errorf("session: %w", ErrUnauthorized), ErrInternal)
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(t, func(c *gin.Context) {
		RespondError(c, fmt.Errorf("boom"), ErrInternal)
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "boom")
}

func TestWithExtension_DoesNotAlias(t *testing.T) {
	base := ErrNotFound.WithExtension("a", 1)
	derived := base.WithExtension("b", 2)
	require.Len(t, base.Extensions, 1)
	require.Len(t, derived.Extensions, 2)
}
