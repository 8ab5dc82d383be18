package persona

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ouwenyi03/Jay-Agent/internal/model/persona"
	"github.com/ouwenyi03/Jay-Agent/pkg/utils"
)

// PostSource 提供人设动态
type PostSource interface {
	Posts(ctx context.Context) ([]persona.Post, error)
}

// Handler persona服务的HTTP处理器
type Handler struct {
	posts PostSource
}

// New 创建persona处理器
func New(posts PostSource) *Handler {
	return &Handler{posts: posts}
}

// RegisterRoutes 注册persona相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/posts", h.handleListPosts)
}

// handleListPosts 列出全部动态，首次访问时写入种子数据
func (h *Handler) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.Posts(r.Context())
	if err != nil {
		log.Printf("[persona] list posts failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load posts")
		return
	}
	utils.RespondJSON(w, http.StatusOK, posts)
}
