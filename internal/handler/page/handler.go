package page

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ouwenyi03/Jay-Agent/internal/model/persona"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type indexData struct {
	Name         string
	EmptyMessage string
}

// Handler 渲染聊天首页
type Handler struct {
	data indexData
}

// New 创建首页处理器
func New(profile persona.Profile) *Handler {
	return &Handler{data: indexData{Name: profile.Name, EmptyMessage: profile.EmptyMessageReply}}
}

// RegisterRoutes 注册首页路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleIndex)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, h.data); err != nil {
		log.Printf("[page] render index failed: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
