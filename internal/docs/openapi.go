package docs

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/Jeomhps/hotelbooking-api/internal/booking"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

// Info is the document header.
type Info struct {
	Title       string
	Version     string
	Description string
	ServerURL   string
}

// Body kinds referenced by operations.
const (
	None     = ""
	Booking  = "booking"
	Bookings = "bookings"
)

// Response documents one status code of an operation.
type Response struct {
	Code        int
	Description string
	Body        string
}

// Operation documents one route. Path uses gin syntax (":id").
type Operation struct {
	Method      string
	Path        string
	Summary     string
	Tag         string
	RequestBody string
	Responses   []Response
}

// Build assembles an OpenAPI 3.0 document for ops. The Booking component
// schema is the same one used to validate request bodies.
func Build(info Info, ops []Operation) map[string]any {
	paths := map[string]any{}
	tags := map[string]bool{}

	for _, op := range ops {
		p, params := convertPath(op.Path)
		item, _ := paths[p].(map[string]any)
		if item == nil {
			item = map[string]any{}
			paths[p] = item
		}

		o := map[string]any{
			"summary":   op.Summary,
			"responses": responses(op.Responses),
		}
		if op.Tag != "" {
			o["tags"] = []string{op.Tag}
			tags[op.Tag] = true
		}
		if len(params) > 0 {
			o["parameters"] = params
		}
		if op.RequestBody != None {
			o["requestBody"] = map[string]any{
				"required": true,
				"content":  jsonContent(op.RequestBody),
			}
		}
		item[strings.ToLower(op.Method)] = o
	}

	tagList := make([]map[string]any, 0, len(tags))
	for _, name := range sortedKeys(tags) {
		tagList = append(tagList, map[string]any{"name": name, "description": "The booking managing API"})
	}

	doc := map[string]any{
		"openapi": "3.0.0",
		"info": map[string]any{
			"title":       info.Title,
			"version":     info.Version,
			"description": info.Description,
		},
		"paths": paths,
		"tags":  tagList,
		"components": map[string]any{
			"schemas": map[string]any{"Booking": booking.Schema()},
		},
	}
	if info.ServerURL != "" {
		doc["servers"] = []map[string]any{{"url": info.ServerURL}}
	}
	return doc
}

// convertPath turns "/Hotelbooking/:id" into "/Hotelbooking/{id}" plus the
// matching path parameters.
func convertPath(p string) (string, []map[string]any) {
	segs := strings.Split(p, "/")
	var params []map[string]any
	for i, s := range segs {
		if !strings.HasPrefix(s, ":") {
			continue
		}
		name := s[1:]
		segs[i] = "{" + name + "}"
		params = append(params, map[string]any{
			"in":          "path",
			"name":        name,
			"required":    true,
			"schema":      map[string]any{"type": "string"},
			"description": "The booking " + name,
		})
	}
	return strings.Join(segs, "/"), params
}

func responses(rs []Response) map[string]any {
	out := make(map[string]any, len(rs))
	for _, r := range rs {
		item := map[string]any{"description": r.Description}
		if r.Body != None {
			item["content"] = jsonContent(r.Body)
		}
		out[strconv.Itoa(r.Code)] = item
	}
	return out
}

func jsonContent(kind string) map[string]any {
	ref := map[string]any{"$ref": "#/components/schemas/Booking"}
	var schema map[string]any
	switch kind {
	case Bookings:
		schema = map[string]any{"type": "array", "items": ref}
	default:
		schema = ref
	}
	return map[string]any{"application/json": map[string]any{"schema": schema}}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// JSON serves doc as application/json.
func JSON(doc map[string]any) gin.HandlerFunc {
	return func(c *gin.Context) { c.JSON(http.StatusOK, doc) }
}

// YAML serves doc as YAML. The document is encoded once up front.
func YAML(doc map[string]any) gin.HandlerFunc {
	raw, err := yaml.Marshal(doc)
	return func(c *gin.Context) {
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", raw)
	}
}
