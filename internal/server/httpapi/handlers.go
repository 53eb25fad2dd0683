package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
	"github.com/shelfkeeper/shelfkeeper/internal/server/repositories/books"
	"github.com/shelfkeeper/shelfkeeper/internal/server/services"
)

type registerRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Code     string `json:"code"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type profileRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
}

type bookRequest struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	Year      string `json:"year"`
	Pages     string `json:"pages"`
	Series    string `json:"series"`
	Binding   string `json:"binding"`
	Row       string `json:"row"`
	ShelfUnit string `json:"shelfUnit"`
	Shelf     string `json:"shelf"`
}

// userView is the outward user representation. The credential record and
// verification code never leave the server.
type userView struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Verified    bool   `json:"verified"`
}

func viewOfUser(u *models.User) userView {
	return userView{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
		Username:    u.Username,
		Verified:    u.VerificationCode == nil,
	}
}

func badJSON(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    "INVALID_INPUT",
		"message": "request body must be valid JSON",
	})
}

// --- auth handlers ---

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}

	sess := currentSession(c)
	user, err := s.auth.Register(c.Request.Context(), sess, services.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewOfUser(user))
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}

	sess := currentSession(c)
	user, err := s.auth.Login(c.Request.Context(), sess, req.Username, req.Password, req.Code)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOfUser(user))
}

func (s *Server) handleLogout(c *gin.Context) {
	s.auth.Logout(c.Request.Context(), currentSession(c))
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (s *Server) handleProfile(c *gin.Context) {
	user, err := s.auth.Profile(c.Request.Context(), currentSession(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOfUser(user))
}

func (s *Server) handleEditProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}

	err := s.auth.EditProfile(c.Request.Context(), currentSession(c), services.ProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (s *Server) handleChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}

	err := s.auth.ChangePassword(c.Request.Context(), currentSession(c), req.OldPassword, req.NewPassword)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password changed"})
}

// --- catalog handlers ---

func bookInputOf(req bookRequest) services.BookInput {
	return services.BookInput{
		Title:     req.Title,
		Author:    req.Author,
		Publisher: req.Publisher,
		Year:      req.Year,
		Pages:     req.Pages,
		Series:    req.Series,
		Binding:   req.Binding,
		Row:       req.Row,
		ShelfUnit: req.ShelfUnit,
		Shelf:     req.Shelf,
	}
}

func (s *Server) handleListBooks(c *gin.Context) {
	items, err := s.catalog.List(c.Request.Context(), currentSession(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": items})
}

func (s *Server) handleGetBook(c *gin.Context) {
	book, err := s.catalog.Get(c.Request.Context(), currentSession(c), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (s *Server) handleAddBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}

	book, err := s.catalog.Add(c.Request.Context(), currentSession(c), bookInputOf(req))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (s *Server) handleUpdateBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}

	err := s.catalog.Update(c.Request.Context(), currentSession(c), c.Param("id"), bookInputOf(req))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (s *Server) handleDeleteBook(c *gin.Context) {
	err := s.catalog.Delete(c.Request.Context(), currentSession(c), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) handleSearchBooks(c *gin.Context) {
	filter := books.SearchFilter{
		Title:     c.Query("title"),
		Author:    c.Query("author"),
		Publisher: c.Query("publisher"),
		Series:    c.Query("series"),
		Binding:   c.Query("binding"),
		Year:      c.Query("year"),
		Pages:     c.Query("pages"),
		Row:       c.Query("row"),
		ShelfUnit: c.Query("shelfUnit"),
		Shelf:     c.Query("shelf"),
	}
	items, err := s.catalog.Search(c.Request.Context(), currentSession(c), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": items})
}
