package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the fruit API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRoutes) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Fruit Store API - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "Fruit Store API", "version": "1.0.0" },
  "components": {
    "schemas": {
      "Fruit": {
        "type": "object",
        "properties": {
          "id": {"type":"integer"}, "name": {"type":"string"}, "category": {"type":"string"},
          "color": {"type":"string"}, "price": {"type":"number"}, "quantity": {"type":"number"},
          "description": {"type":"string"},
          "created_at": {"type":"string","format":"date-time"}, "updated_at": {"type":"string","format":"date-time"}
        }
      },
      "FruitInput": {
        "type": "object",
        "properties": {
          "name": {"type":"string"}, "category": {"type":"string"}, "color": {"type":"string"},
          "price": {"type":"number"}, "quantity": {"type":"number"}, "description": {"type":"string"}
        }
      },
      "Error": { "type": "object", "properties": { "error": {"type":"string"} } }
    }
  },
  "paths": {
    "/": { "get": { "summary": "API information", "responses": { "200": { "description": "name, version and endpoints" } } } },
    "/fruits": {
      "get": {
        "summary": "List fruits",
        "parameters": [
          {"name":"search","in":"query","schema":{"type":"string"},"description":"case-insensitive name substring"},
          {"name":"category","in":"query","schema":{"type":"string"},"description":"case-insensitive category name"}
        ],
        "responses": { "200": { "description": "total and fruits" } }
      },
      "post": {
        "summary": "Create a fruit",
        "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/FruitInput"} } } },
        "responses": { "201": { "description": "created fruit" }, "400": { "description": "missing name or unknown category" } }
      }
    },
    "/fruits/{id}": {
      "parameters": [ {"name":"id","in":"path","required":true,"schema":{"type":"integer"}} ],
      "get": { "summary": "Get a fruit", "responses": { "200": { "description": "fruit" }, "404": { "description": "Fruit not found" } } },
      "put": {
        "summary": "Update a fruit",
        "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/FruitInput"} } } },
        "responses": { "200": { "description": "updated fruit" }, "400": { "description": "no data or unknown category" }, "404": { "description": "Fruit not found" } }
      },
      "delete": { "summary": "Delete a fruit", "responses": { "200": { "description": "message and removed fruit" }, "404": { "description": "Fruit not found" } } }
    },
    "/fruits/category/{category}": {
      "get": {
        "summary": "Fruits in a category",
        "parameters": [ {"name":"category","in":"path","required":true,"schema":{"type":"string"}} ],
        "responses": { "200": { "description": "category, total and fruits" }, "404": { "description": "Category not found" } }
      }
    },
    "/categories": {
      "get": { "summary": "List categories with fruit counts", "responses": { "200": { "description": "total and categories" } } },
      "post": {
        "summary": "Create a category",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"}}} } } },
        "responses": { "201": { "description": "created" }, "400": { "description": "missing name or already exists" } }
      }
    },
    "/categories/{name}": {
      "delete": {
        "summary": "Delete an unused category",
        "parameters": [ {"name":"name","in":"path","required":true,"schema":{"type":"string"}} ],
        "responses": { "200": { "description": "deleted" }, "400": { "description": "category in use" }, "404": { "description": "Category not found" } }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "store unavailable" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "exposition format" } } } }
  }
}`
