package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fruitstore/fruit-api/internal/fruit"
	"github.com/fruitstore/fruit-api/internal/fruit/service"
	"github.com/gin-gonic/gin"
)

func (h *handler) listFruits(c *gin.Context) {
	list, err := h.svc.ListFruits(c.Request.Context(), c.Query("search"), c.Query("category"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(list), "fruits": list})
}

func (h *handler) getFruit(c *gin.Context) {
	id, ok := fruitID(c)
	if !ok {
		writeError(c, service.ErrFruitNotFound)
		return
	}
	f, err := h.svc.GetFruit(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *handler) createFruit(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		writeError(c, fmt.Errorf("read request body: %w", err))
		return
	}
	req, err := fruit.DecodeCreateFruit(body)
	if err != nil {
		writeError(c, decodeError(err, "Name is required"))
		return
	}
	f, err := h.svc.CreateFruit(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

func (h *handler) updateFruit(c *gin.Context) {
	id, ok := fruitID(c)
	if !ok {
		writeError(c, service.ErrFruitNotFound)
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		writeError(c, fmt.Errorf("read request body: %w", err))
		return
	}
	req, err := fruit.DecodeUpdateFruit(body)
	if err != nil && !errors.Is(err, fruit.ErrEmptyBody) {
		// an unknown id is reported before a malformed field
		if _, gerr := h.svc.GetFruit(c.Request.Context(), id); gerr != nil {
			writeError(c, gerr)
			return
		}
		writeError(c, decodeError(err, "No data provided"))
		return
	}
	f, err := h.svc.UpdateFruit(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *handler) deleteFruit(c *gin.Context) {
	id, ok := fruitID(c)
	if !ok {
		writeError(c, service.ErrFruitNotFound)
		return
	}
	f, err := h.svc.DeleteFruit(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fruit deleted successfully", "fruit": f})
}

func (h *handler) fruitsByCategory(c *gin.Context) {
	name := c.Param("category")
	list, err := h.svc.FruitsByCategory(c.Request.Context(), name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": name, "total": len(list), "fruits": list})
}

// decodeError turns a body decoding failure into a ValidationError. Type
// mismatches name the offending field; everything else uses fallback.
func decodeError(err error, fallback string) error {
	var fe *fruit.FieldError
	if errors.As(err, &fe) {
		return &service.ValidationError{Message: fe.Error()}
	}
	return &service.ValidationError{Message: fallback}
}
