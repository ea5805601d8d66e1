package rest

import (
	"github.com/edublog/edublog/blog/application"
	"github.com/edublog/edublog/internal/middleware"
	"github.com/gin-gonic/gin"
)

// API is the HTTP shell over the library surface. It consumes only the
// repository's list/detail/write operations, the renderer, the auth
// service and the contact service.
type API struct {
	repo     *application.PostRepository
	auth     *application.AuthService
	contact  *application.ContactService
	renderer application.Renderer
}

// NewAPI registers all routes on the router.
func NewAPI(router *gin.Engine, repo *application.PostRepository, auth *application.AuthService, contact *application.ContactService, renderer application.Renderer) {
	a := &API{
		repo:     repo,
		auth:     auth,
		contact:  contact,
		renderer: renderer,
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/posts", a.ListPosts)
		v1.GET("/posts/:postId", a.GetPost)
		v1.GET("/stats", a.GetStats)
		v1.POST("/render", a.RenderPreview)
		v1.POST("/sync", a.TriggerSync)

		v1.POST("/auth/login", a.Login)
		v1.POST("/auth/logout", a.Logout)
		v1.GET("/auth/session", a.GetSession)

		v1.GET("/csrf", a.GetCSRFToken)
		v1.POST("/contact", a.SubmitContact)

		admin := v1.Group("", middleware.RequireSession(a.auth))
		{
			admin.POST("/posts", a.CreatePost)
			admin.PUT("/posts/:postId", a.UpdatePost)
			admin.DELETE("/posts/:postId", a.DeletePost)
		}
	}
}
