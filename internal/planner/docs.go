package planner

import (
	_ "embed"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
)

//go:embed openapi.yaml
var openAPISpec []byte

// GetSwagger parses and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, err
	}
	return doc, nil
}

// SwaggerSpecHandler serves the raw OpenAPI specification as JSON
func SwaggerSpecHandler(c *gin.Context) {
	swagger, err := GetSwagger()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load OpenAPI specification"})
		return
	}

	c.JSON(http.StatusOK, swagger)
}

// RegisterSwaggerHandlers registers the OpenAPI spec endpoint
func RegisterSwaggerHandlers(router gin.IRouter) {
	router.GET("/docs/swagger.json", SwaggerSpecHandler)
}
