// Package httpapi exposes the authentication and catalog services over a
// JSON HTTP API. Session state travels in a signed cookie; handlers receive
// the decoded session from middleware and never touch the cookie themselves.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfkeeper/shelfkeeper/internal/logging"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
	"github.com/shelfkeeper/shelfkeeper/internal/server/repositories/books"
	"github.com/shelfkeeper/shelfkeeper/internal/server/services"
	"github.com/shelfkeeper/shelfkeeper/internal/session"
)

// AuthAPI is the slice of the auth service the HTTP layer needs.
type AuthAPI interface {
	Register(ctx context.Context, sess *session.Session, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, sess *session.Session, username, password, code string) (*models.User, error)
	Logout(ctx context.Context, sess *session.Session)
	Profile(ctx context.Context, sess *session.Session) (*models.User, error)
	ChangePassword(ctx context.Context, sess *session.Session, oldPassword, newPassword string) error
	EditProfile(ctx context.Context, sess *session.Session, in services.ProfileInput) error
}

// CatalogAPI is the slice of the catalog service the HTTP layer needs.
type CatalogAPI interface {
	List(ctx context.Context, sess *session.Session) ([]*models.Book, error)
	Get(ctx context.Context, sess *session.Session, id string) (*models.Book, error)
	Add(ctx context.Context, sess *session.Session, in services.BookInput) (*models.Book, error)
	Update(ctx context.Context, sess *session.Session, id string, in services.BookInput) error
	Delete(ctx context.Context, sess *session.Session, id string) error
	Search(ctx context.Context, sess *session.Session, filter books.SearchFilter) ([]*models.Book, error)
}

// Server wires the services into a gin engine.
type Server struct {
	auth         AuthAPI
	catalog      CatalogAPI
	codec        *session.CookieCodec
	logger       logging.Logger
	secureCookie bool
}

// NewServer builds the HTTP layer. secureCookie marks the session cookie
// Secure so browsers only send it over TLS; deployments terminating TLS
// should enable it.
func NewServer(auth AuthAPI, catalog CatalogAPI, codec *session.CookieCodec, logger logging.Logger, secureCookie bool) *Server {
	return &Server{auth: auth, catalog: catalog, codec: codec, logger: logger, secureCookie: secureCookie}
}

// Router builds the HTTP routes.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.sessionMiddleware())

	router.GET("/healthz", handleHealth)

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", s.handleRegister)
			authRoutes.POST("/login", s.handleLogin)
			authRoutes.POST("/logout", s.handleLogout)
		}

		protected := api.Group("")
		protected.Use(s.requireAuth())
		{
			protected.GET("/auth/profile", s.handleProfile)
			protected.PUT("/auth/profile", s.handleEditProfile)
			protected.PUT("/auth/password", s.handleChangePassword)

			protected.GET("/books", s.handleListBooks)
			protected.GET("/books/search", s.handleSearchBooks)
			protected.POST("/books", s.handleAddBook)
			protected.GET("/books/:id", s.handleGetBook)
			protected.PUT("/books/:id", s.handleUpdateBook)
			protected.DELETE("/books/:id", s.handleDeleteBook)
		}
	}

	return router
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
