package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fruitstore/fruit-api/internal/fruit/service"
	"github.com/fruitstore/fruit-api/pkg/logger"
	"github.com/gin-gonic/gin"
)

const (
	apiName    = "Fruit Store API"
	apiVersion = "1.0.0"
)

// Endpoints maps every route to a short description; served by GET /.
var Endpoints = map[string]string{
	"GET /":                           "API information",
	"GET /fruits":                     "Get all fruits",
	"GET /fruits/<id>":                "Get a specific fruit",
	"POST /fruits":                    "Create a new fruit",
	"PUT /fruits/<id>":                "Update a fruit",
	"DELETE /fruits/<id>":             "Delete a fruit",
	"GET /categories":                 "Get all categories",
	"POST /categories":                "Create a new category",
	"DELETE /categories/<name>":       "Delete a category",
	"GET /fruits/category/<category>": "Get fruits by category",
}

type handler struct {
	svc service.Service
}

// RegisterRoutes mounts the fruit and category API on r.
func RegisterRoutes(r gin.IRoutes, svc service.Service) {
	h := &handler{svc: svc}

	r.GET("/", h.info)

	r.GET("/fruits", h.listFruits)
	r.POST("/fruits", h.createFruit)
	r.GET("/fruits/:id", h.getFruit)
	r.PUT("/fruits/:id", h.updateFruit)
	r.DELETE("/fruits/:id", h.deleteFruit)
	r.GET("/fruits/category/:category", h.fruitsByCategory)

	r.GET("/categories", h.listCategories)
	r.POST("/categories", h.createCategory)
	r.DELETE("/categories/:name", h.deleteCategory)
}

func (h *handler) info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":      apiName,
		"version":   apiVersion,
		"endpoints": Endpoints,
	})
}

// fruitID parses the :id path segment. Only non-negative integers name a fruit.
func fruitID(c *gin.Context) (int, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 31)
	if err != nil {
		return 0, false
	}
	return int(id), true
}

// writeError maps service errors onto status codes. Anything unrecognised is
// a storage fault and answered with 500.
func writeError(c *gin.Context, err error) {
	var (
		ve *service.ValidationError
		nf *service.NotFoundError
		ce *service.ConflictError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Message})
	case errors.As(err, &ce):
		c.JSON(http.StatusBadRequest, gin.H{"error": ce.Message})
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
