package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafa/digimon-searcher/internal/domain"
	"github.com/rafa/digimon-searcher/internal/testutil"
)

type pageResponse struct {
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Total int              `json:"total"`
	Items []domain.Digimon `json:"items"`
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestDigimonHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.SampleDigimons())

	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
		wantItems int
	}{
		{name: "defaults", query: "", wantPage: 1, wantLimit: 20, wantItems: 4},
		{name: "explicit paging", query: "?page=2&limit=2", wantPage: 2, wantLimit: 2, wantItems: 2},
		{name: "page past the end", query: "?page=9&limit=2", wantPage: 9, wantLimit: 2, wantItems: 0},
		{name: "non-numeric page coerced", query: "?page=abc", wantPage: 1, wantLimit: 20, wantItems: 4},
		{name: "negative limit floored", query: "?limit=-5", wantPage: 1, wantLimit: 1, wantItems: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, ts.APIURL("/digimons"+tt.query))
			testutil.AssertStatusCode(t, resp, http.StatusOK)

			var result pageResponse
			testutil.AssertJSONResponse(t, resp, &result)
			assert.Equal(t, tt.wantPage, result.Page)
			assert.Equal(t, tt.wantLimit, result.Limit)
			assert.Equal(t, 4, result.Total)
			assert.Len(t, result.Items, tt.wantItems)
		})
	}
}

func TestDigimonHandler_ByLevel(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.SampleDigimons())

	t.Run("matches are paginated", func(t *testing.T) {
		resp := get(t, ts.APIURL("/digimons/level/rookie"))
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var result pageResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, 1, result.Total)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "Agumon", result.Items[0].Name)
	})

	t.Run("diacritics tolerated", func(t *testing.T) {
		resp := get(t, ts.APIURL("/digimons/level/"+url.PathEscape("Chàmpion")))
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var result pageResponse
		testutil.AssertJSONResponse(t, resp, &result)
		// Greymon plus the legacy singular-level Numemon.
		assert.Equal(t, 2, result.Total)
	})

	t.Run("no matches is 404", func(t *testing.T) {
		resp := get(t, ts.APIURL("/digimons/level/ultra"))
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "no digimon found")
	})
}

func TestDigimonHandler_ByType(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.SampleDigimons())

	resp := get(t, ts.APIURL("/digimons/type/mollusk"))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var result pageResponse
	testutil.AssertJSONResponse(t, resp, &result)
	assert.Equal(t, 1, result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Numemon", result.Items[0].Name)

	resp = get(t, ts.APIURL("/digimons/type/unknown"))
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "no digimon found")
}

func TestDigimonHandler_GetByName(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.SampleDigimons())

	tests := []struct {
		name     string
		path     string
		wantName string
	}{
		{name: "exact", path: "Agumon", wantName: "Agumon"},
		{name: "case and diacritics", path: "águmon", wantName: "Agumon"},
		{name: "fuzzy fallback", path: "agumonx", wantName: "Agumon"},
		{name: "parenthetical variant", path: "Omegamon (Alter-S)", wantName: "Omegamon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, ts.APIURL("/digimons/"+url.PathEscape(tt.path)))
			testutil.AssertStatusCode(t, resp, http.StatusOK)

			var d domain.Digimon
			testutil.AssertJSONResponse(t, resp, &d)
			assert.Equal(t, tt.wantName, d.Name)
		})
	}

	t.Run("not found echoes the query", func(t *testing.T) {
		resp := get(t, ts.APIURL("/digimons/zzzzzzzzzz"))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body struct {
			Error string `json:"error"`
			Name  string `json:"name"`
		}
		testutil.AssertJSONResponse(t, resp, &body)
		assert.Equal(t, "digimon not found", body.Error)
		assert.Equal(t, "zzzzzzzzzz", body.Name)
	})
}

func TestDigimonHandler_Search(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.SampleDigimons())

	t.Run("name substring with paging", func(t *testing.T) {
		resp := get(t, ts.APIURL("/digimons/search?name=mon&page=2&limit=1"))
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var result pageResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, 4, result.Total)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "Greymon", result.Items[0].Name)
	})

	t.Run("criteria are ANDed", func(t *testing.T) {
		resp := get(t, ts.APIURL("/digimons/search?attribute=vaccine&level=mega"))
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var result pageResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, 1, result.Total)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "Omegamon", result.Items[0].Name)
	})

	t.Run("empty result is 200", func(t *testing.T) {
		resp := get(t, ts.APIURL("/digimons/search?name=zzz"))
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var result pageResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Zero(t, result.Total)
		assert.Empty(t, result.Items)
	})

	t.Run("search surface default limit", func(t *testing.T) {
		resp := get(t, ts.APIURL("/digimons/search"))
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var result pageResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, ts.Config.DefaultSearchLimit, result.Limit)
		assert.Equal(t, 4, result.Total)
	})
}

func TestHealthAndIndex(t *testing.T) {
	ts := testutil.NewTestServer(t, nil)

	resp := get(t, ts.Server.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, ts.Server.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var index struct {
		Message string            `json:"message"`
		Routes  map[string]string `json:"routes"`
	}
	testutil.AssertJSONResponse(t, resp, &index)
	assert.NotEmpty(t, index.Routes)
}
