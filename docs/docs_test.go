package docs

import (
	"encoding/json"
	"regexp"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

var pathLine = regexp.MustCompile(`(?m)^        "(/[^"]*)": \{$`)

func TestPathsSorted(t *testing.T) {
	var paths []string
	for _, m := range pathLine.FindAllStringSubmatch(docTemplate, -1) {
		paths = append(paths, m[1])
	}
	require.NotEmpty(t, paths)
	assert.True(t, sort.StringsAreSorted(paths), "paths: %v", paths)
}

func TestReadDoc(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		BasePath string `json:"basePath"`
		Info     struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"info"`
		Paths map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "/api", doc.BasePath)
	assert.Equal(t, "OO Backend API", doc.Info.Title)
	assert.Equal(t, "菜单、门店、分类、菜品与规格的后台管理接口", doc.Info.Description)
	assert.Contains(t, doc.Paths, "/menus/{id}/categories")
	assert.Contains(t, doc.Paths, "/users/lookup")
}
