package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "spendboard/internal/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestLogging(t *testing.T) {
	var seenID string
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/income", func(c *gin.Context) {
		seenID = RequestID(c)
		c.JSON(http.StatusOK, gin.H{"income": []string{}})
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/income?financial_year=FY+2024/2025", nil)
	r.ServeHTTP(rec, req)

	headerID := rec.Header().Get("X-Request-ID")
	if headerID == "" {
		t.Fatal("expected an X-Request-ID header")
	}
	if seenID != headerID {
		t.Errorf("handler saw request id %q, header carries %q", seenID, headerID)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/income", nil))
	if rec.Header().Get("X-Request-ID") == headerID {
		t.Error("expected a fresh request id per request")
	}
}

func TestRequestIDWithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := RequestID(c); got != "" {
		t.Errorf("expected empty request id, got %q", got)
	}
}

func TestErrorHandler(t *testing.T) {
	setup := func(fail func(c *gin.Context)) *gin.Engine {
		r := gin.New()
		r.Use(RequestLogging(), ErrorHandler())
		r.GET("/spending", func(c *gin.Context) {
			fail(c)
		})
		return r
	}

	errorBody := func(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
		t.Helper()
		var body map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON response: %v", err)
		}
		errObj, ok := body["error"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected an error envelope, got %s", rec.Body.String())
		}
		return errObj
	}

	t.Run("app error keeps its status and code", func(t *testing.T) {
		r := setup(func(c *gin.Context) {
			_ = c.Error(apperrors.ErrRecordNotFound)
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/spending", nil))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
		if got := errorBody(t, rec)["code"]; got != "RECORD_NOT_FOUND" {
			t.Errorf("expected code RECORD_NOT_FOUND, got %v", got)
		}
	})

	t.Run("unexpected error becomes a generic 500", func(t *testing.T) {
		r := setup(func(c *gin.Context) {
			_ = c.Error(errors.New("sheet exploded"))
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/spending", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		errObj := errorBody(t, rec)
		if errObj["code"] != "INTERNAL_ERROR" {
			t.Errorf("expected code INTERNAL_ERROR, got %v", errObj["code"])
		}
		if msg, _ := errObj["message"].(string); msg == "sheet exploded" {
			t.Error("internal error detail leaked into the response")
		}
	})

	t.Run("clean request passes through untouched", func(t *testing.T) {
		r := setup(func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"spending": []string{}})
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/spending", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
