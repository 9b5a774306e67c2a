package industry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-frontier/internal/industry/dto"
	"go-frontier/pkg/dataset"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAPI mounts the industry module on a chi router the same way the
// server main does, backed by a dataset loaded from fixture files.
func newTestAPI(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()

	write := func(name, content string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	write("types.json", `{
		"10": {"typeName": "Tritanium"},
		"100": {"typeName": "Widget", "groupID": 18}
	}`)
	write("ships.json", `{"601": {"typeName": "Executioner", "groupID": 25}}`)
	write("blueprints.json", `{
		"200": {
			"blueprintTypeID": 200,
			"activities": {
				"manufacturing": {
					"materials": [{"typeID": 10, "quantity": 5}],
					"products": [{"typeID": 100, "quantity": 1}]
				}
			}
		}
	}`)

	r := chi.NewRouter()
	api := humachi.New(r, huma.DefaultConfig("Industry Test API", "1.0.0"))
	NewModule(dataset.NewService(dir)).RegisterUnifiedRoutes(api, "/industry")

	return r
}

// doJSON drives one request through the handler and decodes a successful
// JSON body into out when given.
func doJSON(t *testing.T, h http.Handler, method, path, body string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestSearchEndpoint(t *testing.T) {
	h := newTestAPI(t)

	var resp dto.SearchResponse
	rec := doJSON(t, h, http.MethodGet, "/industry/search?q=Widget", "", &resp)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "Widget", resp.Query)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, 100, resp.Results[0].TypeID)
	assert.Equal(t, "Widget", resp.Results[0].TypeName)
	assert.Equal(t, "types", resp.Results[0].Source)
}

func TestDependenciesEndpoint(t *testing.T) {
	h := newTestAPI(t)

	var resp dto.DependencyResponse
	rec := doJSON(t, h, http.MethodGet, "/industry/types/100/dependencies", "", &resp)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 100, resp.TypeID)
	assert.Equal(t, "Widget", resp.TypeName)
	assert.Equal(t, 10, resp.MaxDepth)
	require.Equal(t, 3, resp.Count)

	ids := make([]int, len(resp.Types))
	for i, nt := range resp.Types {
		ids[i] = nt.TypeID
	}
	assert.Equal(t, []int{10, 100, 200}, ids, "closure holds the target, its blueprint and the materials")
}

func TestChainEndpoint(t *testing.T) {
	h := newTestAPI(t)

	var resp dto.ChainResponse
	rec := doJSON(t, h, http.MethodGet, "/industry/types/100/chain", "", &resp)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 100, resp.Target)
	require.Len(t, resp.Levels, 2)

	level0 := resp.Levels[0]
	require.Len(t, level0, 1)
	assert.True(t, level0[0].Craftable)
	require.Len(t, level0[0].Materials, 1)
	assert.Equal(t, "Tritanium", level0[0].Materials[0].TypeName)
	assert.False(t, level0[0].Materials[0].Craftable)

	level1 := resp.Levels[1]
	require.Len(t, level1, 1)
	assert.Equal(t, 10, level1[0].TypeID)
	assert.False(t, level1[0].Craftable)
	assert.Empty(t, level1[0].Materials)
}

func TestCategoryEndpoints(t *testing.T) {
	h := newTestAPI(t)

	var counts dto.CategoryCounts
	rec := doJSON(t, h, http.MethodGet, "/industry/categories", "", &counts)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 1, counts.Categories["components"], "Widget has a producing blueprint")
	assert.Equal(t, 1, counts.Categories["materials"])
	assert.Equal(t, 1, counts.Categories["blueprints"])
	assert.Equal(t, 1, counts.Categories["ships"])
	assert.Equal(t, 4, counts.Total)

	var listing dto.CategoryListResponse
	rec = doJSON(t, h, http.MethodGet, "/industry/categories/components", "", &listing)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, listing.Count)
	assert.Equal(t, "Widget", listing.Items[0].TypeName)

	rec = doJSON(t, h, http.MethodGet, "/industry/categories/bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "valid categories")
}

func TestSelectionEndpoints(t *testing.T) {
	h := newTestAPI(t)

	var created dto.SessionView
	rec := doJSON(t, h, http.MethodPost, "/industry/selections", `{"type_ids": [100]}`, &created)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, created.SessionID)
	assert.Equal(t, []int{100}, created.Items)

	// Non-positive seed ids are rejected before a session is created
	rec = doJSON(t, h, http.MethodPost, "/industry/selections", `{"type_ids": [0]}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var updated dto.SessionView
	rec = doJSON(t, h, http.MethodPut, "/industry/selections/"+created.SessionID+"/items/10", "", &updated)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{10, 100}, updated.Items)

	var exported dto.SelectionExport
	rec = doJSON(t, h, http.MethodPost, "/industry/selections/"+created.SessionID+"/export", "", &exported)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, exported.Meta.SelectedCount)
	assert.Equal(t, 3, exported.Meta.TotalWithDependencies)
	assert.Contains(t, exported.Blueprints, 200)
	assert.Contains(t, exported.Types, 100)

	rec = doJSON(t, h, http.MethodGet, "/industry/selections/11111111-2222-3333-4444-555555555555", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
