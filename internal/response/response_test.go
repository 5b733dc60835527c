package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, header string, h gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/x", h)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set(HeaderRequestID, header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestFailCarriesCodeAndMessage(t *testing.T) {
	w, body := serve(t, "", func(c *gin.Context) {
		Fail(c, http.StatusGatewayTimeout, ErrGenerationTimeout)
	})

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrGenerationTimeout, body.Error.Code)
	assert.Equal(t, GetMessage(ErrGenerationTimeout), body.Error.Message)
	assert.Nil(t, body.Data)
	assert.NotEmpty(t, body.Metadata.RequestID)
	assert.NotEmpty(t, body.Metadata.Timestamp)
}

func TestFailWithFields(t *testing.T) {
	_, body := serve(t, "", func(c *gin.Context) {
		FailWithFields(c, http.StatusBadRequest, ErrValidation, map[string]string{"topic": "topic is required"})
	})

	require.NotNil(t, body.Error)
	assert.Equal(t, "topic is required", body.Error.Fields["topic"])
}

func TestRequestIDReusesClientHeader(t *testing.T) {
	w, body := serve(t, "abc-123", func(c *gin.Context) {
		Success(c, http.StatusOK, RequestID(c))
	})

	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "abc-123", body.Metadata.RequestID)
	assert.Equal(t, "abc-123", body.Data)
}

func TestRequestIDReplacesMalformedHeader(t *testing.T) {
	for _, bad := range []string{"has space", strings.Repeat("x", maxRequestIDLen+1)} {
		w, body := serve(t, bad, func(c *gin.Context) {
			Success(c, http.StatusOK, nil)
		})
		assert.NotEqual(t, bad, w.Header().Get(HeaderRequestID))
		assert.Equal(t, w.Header().Get(HeaderRequestID), body.Metadata.RequestID)
	}
}

func TestSuccessList(t *testing.T) {
	_, body := serve(t, "", func(c *gin.Context) {
		SuccessList(c, http.StatusOK, []string{"res3"}, 1, "fractions")
	})
	require.NotNil(t, body.List)
	assert.Equal(t, ListInfo{Total: 1, Query: "fractions"}, *body.List)
	assert.Nil(t, body.Error)
}

func TestGetMessageUnknownCode(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred.", GetMessage("NOPE"))
}
