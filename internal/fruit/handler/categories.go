package handler

import (
	"fmt"
	"net/http"

	"github.com/fruitstore/fruit-api/internal/fruit"
	"github.com/gin-gonic/gin"
)

func (h *handler) listCategories(c *gin.Context) {
	list, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(list), "categories": list})
}

func (h *handler) createCategory(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		writeError(c, fmt.Errorf("read request body: %w", err))
		return
	}
	req, err := fruit.DecodeCreateCategory(body)
	if err != nil {
		writeError(c, decodeError(err, "Category name is required"))
		return
	}
	name, err := h.svc.CreateCategory(c.Request.Context(), *req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created successfully", "category": name})
}

func (h *handler) deleteCategory(c *gin.Context) {
	name, err := h.svc.DeleteCategory(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully", "category": name})
}
