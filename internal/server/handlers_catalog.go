// internal/server/handlers_catalog.go
package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oogway7h/ShopIA-web/internal/common/errors"
	"github.com/oogway7h/ShopIA-web/internal/models"
)

type categoriaPayload struct {
	Nombre      string `json:"nombre" binding:"required"`
	Descripcion string `json:"descripcion"`
}

func (s *Server) handleListCategorias(c *gin.Context) {
	categorias, err := s.catalog.ListCategories(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categorias": categorias})
}

// handleCreateCategoria inserts the category and, when configured, reloads
// the interpreter so the new name is recognizable right away.
func (s *Server) handleCreateCategoria(c *gin.Context) {
	var payload categoriaPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		s.respondError(c, errors.NewInvalidRequestFormatError(err.Error()))
		return
	}

	categoria := &models.Categoria{Nombre: payload.Nombre, Descripcion: payload.Descripcion}
	if err := s.catalog.CreateCategory(c.Request.Context(), categoria); err != nil {
		s.respondError(c, err)
		return
	}

	s.reloadCategoryRules(c)
	c.JSON(http.StatusCreated, categoria)
}

// handleUpdateCategoria renames a category; the interpreter reload drops the
// old name's rule and installs the new one.
func (s *Server) handleUpdateCategoria(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		s.respondError(c, errors.NewInvalidRequestFormatError("identificador de categoría inválido"))
		return
	}
	var payload categoriaPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		s.respondError(c, errors.NewInvalidRequestFormatError(err.Error()))
		return
	}

	categoria := &models.Categoria{ID: id, Nombre: payload.Nombre, Descripcion: payload.Descripcion}
	if err := s.catalog.UpdateCategory(c.Request.Context(), categoria); err != nil {
		s.respondError(c, err)
		return
	}

	s.reloadCategoryRules(c)
	c.JSON(http.StatusOK, categoria)
}

func (s *Server) handleDeleteCategoria(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		s.respondError(c, errors.NewInvalidRequestFormatError("identificador de categoría inválido"))
		return
	}

	if err := s.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}

	s.reloadCategoryRules(c)
	c.Status(http.StatusNoContent)
}

// reloadCategoryRules refreshes the interpreter after a category change. A
// reload failure leaves the previous rules serving and is not a request
// error.
func (s *Server) reloadCategoryRules(c *gin.Context) {
	if !s.cfg.Interpreter.ReloadOnCategoryChange {
		return
	}
	if _, err := s.interpreter.ReloadCategories(c.Request.Context()); err != nil {
		s.log.WithError(err).Warn("category rule reload failed", nil)
	}
}

func (s *Server) handleCategoriaProductos(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		s.respondError(c, errors.NewInvalidRequestFormatError("identificador de categoría inválido"))
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	productos, err := s.catalog.ListProductsByCategory(c.Request.Context(), id, page, size)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"productos": productos})
}

// handleCatalogoBuscar serves the navigation target the interpreter emits
// for price, date, and free-text searches.
func (s *Server) handleCatalogoBuscar(c *gin.Context) {
	var query models.ProductSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s.respondError(c, errors.NewInvalidRequestFormatError(err.Error()))
		return
	}

	result, err := s.catalog.SearchProducts(c.Request.Context(), query)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
