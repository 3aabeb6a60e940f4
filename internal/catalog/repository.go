// internal/catalog/repository.go
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/oogway7h/ShopIA-web/internal/common/database"
	"github.com/oogway7h/ShopIA-web/internal/common/errors"
	"github.com/oogway7h/ShopIA-web/internal/common/logger"
	"github.com/oogway7h/ShopIA-web/internal/models"
)

// Repository persists categories and products in PostgreSQL.
type Repository struct {
	db  *database.PostgresClient
	log logger.Logger
}

func NewRepository(db *database.PostgresClient, log logger.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// ListCategories returns all categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Categoria, error) {
	const query = `
		SELECT id, nombre, COALESCE(descripcion, ''), created_at
		FROM categorias
		ORDER BY nombre`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_categories", err)
	}
	defer rows.Close()

	var categorias []models.Categoria
	for rows.Next() {
		var c models.Categoria
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.CreatedAt); err != nil {
			return nil, errors.NewQueryExecutionFailedError("list_categories", err)
		}
		categorias = append(categorias, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_categories", err)
	}
	return categorias, nil
}

// GetCategory fetches one category by id.
func (r *Repository) GetCategory(ctx context.Context, id int64) (*models.Categoria, error) {
	const query = `
		SELECT id, nombre, COALESCE(descripcion, ''), created_at
		FROM categorias
		WHERE id = $1`

	var c models.Categoria
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewResourceNotFoundError("categoria", fmt.Sprintf("id=%d", id))
	}
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("get_category", err)
	}
	return &c, nil
}

// CreateCategory inserts a category and fills in its generated fields.
func (r *Repository) CreateCategory(ctx context.Context, c *models.Categoria) error {
	const query = `
		INSERT INTO categorias (nombre, descripcion)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, c.Nombre, c.Descripcion).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return errors.NewQueryExecutionFailedError("create_category", err)
	}
	return nil
}

// UpdateCategory updates name and description of an existing category.
func (r *Repository) UpdateCategory(ctx context.Context, c *models.Categoria) error {
	const query = `
		UPDATE categorias
		SET nombre = $1, descripcion = $2
		WHERE id = $3`

	res, err := r.db.Exec(ctx, query, c.Nombre, c.Descripcion, c.ID)
	if err != nil {
		return errors.NewQueryExecutionFailedError("update_category", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NewResourceNotFoundError("categoria", fmt.Sprintf("id=%d", c.ID))
	}
	return nil
}

// DeleteCategory removes a category by id.
func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM categorias WHERE id = $1`, id)
	if err != nil {
		return errors.NewQueryExecutionFailedError("delete_category", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NewResourceNotFoundError("categoria", fmt.Sprintf("id=%d", id))
	}
	return nil
}

// ListProductsByCategory pages through a category's products.
func (r *Repository) ListProductsByCategory(ctx context.Context, categoriaID int64, page, size int) ([]models.Producto, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	const query = `
		SELECT id, nombre, marca, COALESCE(descripcion, ''), precio, stock,
		       categoria_id, COALESCE(url_imagen_principal, ''), descuento, fecha_creacion
		FROM productos
		WHERE categoria_id = $1
		ORDER BY nombre
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, categoriaID, size, (page-1)*size)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_products_by_category", err)
	}
	defer rows.Close()

	var productos []models.Producto
	for rows.Next() {
		var p models.Producto
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Marca, &p.Descripcion, &p.Precio,
			&p.Stock, &p.CategoriaID, &p.URLImagen, &p.Descuento, &p.FechaCreacion); err != nil {
			return nil, errors.NewQueryExecutionFailedError("list_products_by_category", err)
		}
		productos = append(productos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_products_by_category", err)
	}
	return productos, nil
}
