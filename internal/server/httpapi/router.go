package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogward/blogward/internal/logging"
)

// NewRouter assembles the gin engine: global middleware, the /auth and
// /blogs groups, and the catch-all 404.
func NewRouter(auth *AuthHandler, blog *BlogHandler, mw *Middleware, log logging.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(CORS())

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/blogs")
	})

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/registration", mw.RequireAnonymous, auth.Register)
		authGroup.POST("/login", mw.RequireAnonymous, auth.Login)
		authGroup.DELETE("/logout", mw.RequireAuth, auth.Logout)
		authGroup.GET("/account", mw.RequireAuth, auth.Account)
		authGroup.PUT("/account", mw.RequireAuth, auth.UpdateAccount)
		authGroup.DELETE("/account", mw.RequireAuth, auth.DeleteAccount)
	}

	blogGroup := r.Group("/blogs")
	{
		blogGroup.GET("", blog.List)
		blogGroup.POST("/create_blog", mw.RequireAuth, blog.Create)
		blogGroup.GET("/blog/:blogId", blog.Get)
		blogGroup.PUT("/blog/:blogId", mw.RequireAuth, mw.RequireBlogOwner, blog.Update)
		blogGroup.DELETE("/blog/:blogId", mw.RequireAuth, mw.RequireBlogOwner, blog.Delete)
		blogGroup.POST("/:blogId/comments", mw.RequireAuth, blog.AddComment)
		blogGroup.DELETE("/:blogId/comments", mw.RequireAuth, blog.RemoveComment)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Oops, the page was not found"})
	})

	return r
}
