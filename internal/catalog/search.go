// internal/catalog/search.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/oogway7h/ShopIA-web/internal/common/database"
	"github.com/oogway7h/ShopIA-web/internal/common/errors"
	"github.com/oogway7h/ShopIA-web/internal/common/logger"
	"github.com/oogway7h/ShopIA-web/internal/models"
)

// ProductSearch runs catalog queries against the product index. The index
// carries the same fields the interpreter emits as filters.
type ProductSearch struct {
	es    *database.ElasticsearchClient
	index string
	log   logger.Logger
}

func NewProductSearch(es *database.ElasticsearchClient, index string, log logger.Logger) *ProductSearch {
	return &ProductSearch{es: es, index: index, log: log}
}

// SearchResult is a page of matched products plus the total hit count.
type SearchResult struct {
	Total     int64             `json:"total"`
	Productos []models.Producto `json:"productos"`
}

// Search executes the query against Elasticsearch.
func (p *ProductSearch) Search(ctx context.Context, q models.ProductSearchQuery) (*SearchResult, error) {
	body := buildProductQuery(q)

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	client := p.es.Client
	res, err := client.Search(
		client.Search.WithContext(ctx),
		client.Search.WithIndex(p.index),
		client.Search.WithBody(&buf),
		client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return nil, errors.NewIndexNotFoundError(p.index)
	}
	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(fmt.Errorf("search returned %s", res.Status()))
	}

	var envelope struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Producto `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	result := &SearchResult{Total: envelope.Hits.Total.Value}
	for _, hit := range envelope.Hits.Hits {
		result.Productos = append(result.Productos, hit.Source)
	}
	return result, nil
}

// buildProductQuery translates interpreter filters into an ES bool query.
// Free text searches name, brand and description; the rest are filters.
func buildProductQuery(q models.ProductSearchQuery) map[string]interface{} {
	var must []interface{}
	var filter []interface{}

	if q.Search != "" {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     q.Search,
				"fields":    []string{"nombre^3", "marca^2", "descripcion"},
				"fuzziness": "AUTO",
			},
		})
	}
	if q.Categoria != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"categoria_id": q.Categoria},
		})
	}
	if q.PrecioGte != nil || q.PrecioLte != nil {
		rangeBody := map[string]interface{}{}
		if q.PrecioGte != nil {
			rangeBody["gte"] = *q.PrecioGte
		}
		if q.PrecioLte != nil {
			rangeBody["lte"] = *q.PrecioLte
		}
		filter = append(filter, map[string]interface{}{
			"range": map[string]interface{}{"precio": rangeBody},
		})
	}
	if q.FechaInicio != "" || q.FechaFin != "" {
		rangeBody := map[string]interface{}{}
		if q.FechaInicio != "" {
			rangeBody["gte"] = q.FechaInicio
		}
		if q.FechaFin != "" {
			rangeBody["lte"] = q.FechaFin
		}
		filter = append(filter, map[string]interface{}{
			"range": map[string]interface{}{"fecha_creacion": rangeBody},
		})
	}

	boolQuery := map[string]interface{}{}
	if len(must) > 0 {
		boolQuery["must"] = must
	}
	if len(filter) > 0 {
		boolQuery["filter"] = filter
	}
	if len(boolQuery) == 0 {
		boolQuery["must"] = []interface{}{map[string]interface{}{"match_all": map[string]interface{}{}}}
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.Size
	if size < 1 || size > 100 {
		size = 20
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
		"from":  (page - 1) * size,
		"size":  size,
		"sort":  []interface{}{map[string]interface{}{"_score": "desc"}, map[string]interface{}{"nombre.keyword": "asc"}},
	}
}
