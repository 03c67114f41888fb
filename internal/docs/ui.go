package docs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Document file names served under the docs prefix.
const (
	JSONFile = "openapi.json"
	YAMLFile = "openapi.yaml"
)

// Handler serves everything under prefix, mounted as prefix+"/*any":
// the document as JSON and YAML, and Swagger UI reading the JSON document.
// The bare prefix redirects to the UI.
func Handler(prefix string, doc map[string]any) gin.HandlerFunc {
	jsonDoc, yamlDoc := JSON(doc), YAML(doc)
	ui := ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL(prefix+"/"+JSONFile),
		ginSwagger.DocExpansion("list"),
	)
	return func(c *gin.Context) {
		switch c.Param("any") {
		case "", "/":
			c.Redirect(http.StatusMovedPermanently, prefix+"/index.html")
		case "/" + JSONFile:
			jsonDoc(c)
		case "/" + YAMLFile:
			yamlDoc(c)
		default:
			ui(c)
		}
	}
}
