package rest

import (
	"net/http"
	"strconv"

	"github.com/edublog/edublog/api"
	"github.com/edublog/edublog/blog/domain"
	"github.com/gin-gonic/gin"
)

// ListPosts serves one filtered, sorted, paginated page.
// Query parameters: page, limit, type, published, tag, sortBy, sortOrder.
func (a *API) ListPosts(c *gin.Context) {
	opts := domain.ListOptions{
		ContentType: domain.ContentType(c.Query("type")),
		Tag:         c.Query("tag"),
		SortBy:      c.Query("sortBy"),
		SortOrder:   c.Query("sortOrder"),
	}

	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(c, &domain.ValidationError{Field: "page", Reason: "must be a positive integer"})
			return
		}
		opts.Page = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(c, &domain.ValidationError{Field: "limit", Reason: "must be a positive integer"})
			return
		}
		opts.Limit = n
	}
	if v := c.Query("published"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondError(c, &domain.ValidationError{Field: "published", Reason: "must be a boolean"})
			return
		}
		opts.IsPublished = &b
	}

	page, err := a.repo.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (a *API) GetPost(c *gin.Context) {
	id, err := parsePostID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	post, err := a.repo.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (a *API) CreatePost(c *gin.Context) {
	var draft domain.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respondError(c, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	post, err := a.repo.Create(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (a *API) UpdatePost(c *gin.Context) {
	id, err := parsePostID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var draft domain.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respondError(c, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	post, err := a.repo.Update(c.Request.Context(), id, draft)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (a *API) DeletePost(c *gin.Context) {
	id, err := parsePostID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := a.repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (a *API) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, a.repo.Stats())
}

// RenderPreview converts markdown to an HTML fragment for the editor.
func (a *API) RenderPreview(c *gin.Context) {
	var req api.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	c.JSON(http.StatusOK, api.RenderResponse{HTML: a.renderer.Render(req.Markdown)})
}

// TriggerSync runs an explicit reconciliation against the remote mirror.
func (a *API) TriggerSync(c *gin.Context) {
	if err := a.repo.Refresh(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parsePostID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("postId"), 10, 64)
	if err != nil {
		return 0, &domain.ValidationError{Field: "postId", Reason: "must be an integer"}
	}
	return id, nil
}
