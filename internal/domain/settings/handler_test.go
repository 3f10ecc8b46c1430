package settings

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHandler_Save_Ack(t *testing.T) {
	h := NewHandler(newTestService(t))
	e := echo.New()
	body := `{"name":"City Clinic","currency":"USD"}`
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Save(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"saved":true`) {
		t.Errorf("expected save acknowledgment, got %s", rec.Body.String())
	}
}

func TestHandler_Save_Partial(t *testing.T) {
	h := NewHandler(newTestService(t))
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"name":"City Clinic"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Save(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"saved":false`) {
		t.Errorf("expected rejection of partial submission, got %s", rec.Body.String())
	}
}
