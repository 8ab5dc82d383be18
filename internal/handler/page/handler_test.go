package page

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ouwenyi03/Jay-Agent/internal/model/persona"
)

func TestIndexRendersPersonaName(t *testing.T) {
	r := chi.NewRouter()
	New(persona.DefaultProfile()).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	body := resp.Body.String()
	if !strings.Contains(body, "<title>和周杰伦聊天</title>") {
		t.Fatal("page should carry the persona name")
	}
	if !strings.Contains(body, "/api/chat") {
		t.Fatal("page should post to /api/chat")
	}
}
