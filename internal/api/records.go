package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func CreateHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		rec, err := storage.Create(c.Param("table"), body)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
			return
		}
		c.JSON(http.StatusCreated, storage.flatten(rec))
	}
}

func ListHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		recs, err := storage.List(c.Param("table"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
			return
		}
		out := make([]map[string]any, 0, len(recs))
		for _, rec := range recs {
			out = append(out, storage.flatten(rec))
		}
		c.JSON(http.StatusOK, out)
	}
}

func GetOneHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, found, err := storage.Get(c.Param("table"), c.Param("guid"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.JSON(http.StatusOK, storage.flatten(rec))
	}
}
