package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	listCacheKey  = "list"
	countCacheKey = "count"
)

type ProductController struct {
	catalog   CatalogService
	cache     *CacheManager
	validator *RequestValidator
}

// NewProductController wires the catalog service and an optional cache
// (nil disables caching).
func NewProductController(catalog CatalogService, cache *CacheManager) *ProductController {
	return &ProductController{
		catalog:   catalog,
		cache:     cache,
		validator: NewRequestValidator(),
	}
}

// GetProducts returns the newest products, photo omitted.
func (pc *ProductController) GetProducts(c *gin.Context) {
	if payload, ok := pc.cachedPayload(c, listCacheKey); ok {
		c.Data(http.StatusOK, "application/json", payload)
		return
	}

	products, err := pc.catalog.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{
		"success":    true,
		"totalCount": len(products),
		"message":    "Products fetched successfully",
		"products":   products,
	}
	pc.cacheAsync(listCacheKey, resp)
	c.JSON(http.StatusOK, resp)
}

// GetProductBySlug returns a single product, photo omitted.
func (pc *ProductController) GetProductBySlug(c *gin.Context) {
	product, err := pc.catalog.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Single product fetched successfully",
		"product": product,
	})
}

// ProductPhoto serves the raw photo bytes with the stored content type.
func (pc *ProductController) ProductPhoto(c *gin.Context) {
	id, err := pc.validator.ParseObjectID(c, "pid")
	if err != nil {
		respondError(c, err)
		return
	}
	data, contentType, err := pc.catalog.GetPhoto(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, data)
}

// CreateProduct creates a product from a multipart form.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	in, err := pc.validator.ParseProductForm(c)
	if err != nil {
		respondError(c, err)
		return
	}
	product, err := pc.catalog.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	pc.invalidateCache(c)
	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Product created successfully",
		"products": product,
	})
}

// UpdateProduct replaces a product's fields from a multipart form.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, err := pc.validator.ParseObjectID(c, "pid")
	if err != nil {
		respondError(c, err)
		return
	}
	in, err := pc.validator.ParseProductForm(c)
	if err != nil {
		respondError(c, err)
		return
	}
	product, err := pc.catalog.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	pc.invalidateCache(c)
	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Product updated successfully",
		"products": product,
	})
}

// DeleteProduct removes a product; deleting an id that is already gone is
// still reported as success.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, err := pc.validator.ParseObjectID(c, "pid")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := pc.catalog.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	pc.invalidateCache(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully",
	})
}

// FilterProducts applies a category checklist and price range.
func (pc *ProductController) FilterProducts(c *gin.Context) {
	checked, radio, err := pc.validator.ParseFilterRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}
	products, err := pc.catalog.Filter(c.Request.Context(), checked, radio)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": products,
	})
}

// ProductCount returns the catalog size.
func (pc *ProductController) ProductCount(c *gin.Context) {
	if payload, ok := pc.cachedPayload(c, countCacheKey); ok {
		c.Data(http.StatusOK, "application/json", payload)
		return
	}

	total, err := pc.catalog.Count(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"success": true, "total": total}
	pc.cacheAsync(countCacheKey, resp)
	c.JSON(http.StatusOK, resp)
}

// ProductList returns one fixed-size page of the newest-first ordering.
func (pc *ProductController) ProductList(c *gin.Context) {
	page := pc.validator.ParsePage(c)
	cacheKey := fmt.Sprintf("page:%d", page)

	if payload, ok := pc.cachedPayload(c, cacheKey); ok {
		c.Data(http.StatusOK, "application/json", payload)
		return
	}

	products, err := pc.catalog.Paginate(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"success": true, "products": products}
	pc.cacheAsync(cacheKey, resp)
	c.JSON(http.StatusOK, resp)
}

// SearchProducts matches the keyword against names and descriptions.
func (pc *ProductController) SearchProducts(c *gin.Context) {
	products, err := pc.catalog.Search(c.Request.Context(), c.Param("keyword"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": products,
	})
}

// RelatedProducts returns other products of the same category.
func (pc *ProductController) RelatedProducts(c *gin.Context) {
	pid, err := pc.validator.ParseObjectID(c, "pid")
	if err != nil {
		respondError(c, err)
		return
	}
	cid, err := pc.validator.ParseObjectID(c, "cid")
	if err != nil {
		respondError(c, err)
		return
	}
	products, err := pc.catalog.Related(c.Request.Context(), pid, cid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Related products fetched successfully",
		"products": products,
	})
}

// ProductsByCategory resolves a category slug and lists its products.
func (pc *ProductController) ProductsByCategory(c *gin.Context) {
	category, products, err := pc.catalog.ByCategorySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Fetched all products of this category",
		"category": category,
		"products": products,
	})
}

// GetCategories lists every category.
func (pc *ProductController) GetCategories(c *gin.Context) {
	categories, err := pc.catalog.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
	})
}

func (pc *ProductController) cachedPayload(c *gin.Context, key string) ([]byte, bool) {
	if pc.cache == nil {
		return nil, false
	}
	return pc.cache.Get(c.Request.Context(), key)
}

func (pc *ProductController) cacheAsync(key string, payload interface{}) {
	if pc.cache != nil {
		pc.cache.SetAsync(key, payload)
	}
}

func (pc *ProductController) invalidateCache(c *gin.Context) {
	if pc.cache != nil {
		pc.cache.Invalidate(c.Request.Context())
	}
}
