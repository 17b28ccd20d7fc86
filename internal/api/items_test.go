package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontend_go/internal/domain"
)

func TestListHandlesBothResponseShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bare array", `[{"id":1,"title":"Keys"},{"id":2,"title":"Umbrella"}]`},
		{"wrapped object", `{"items":[{"id":1,"title":"Keys"},{"id":2,"title":"Umbrella"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/items", r.URL.Path)
				w.Write([]byte(tt.body))
			})

			items, err := c.List(context.Background())
			require.NoError(t, err)
			require.Len(t, items, 2)
			assert.Equal(t, "Keys", items[0].Title)
		})
	}
}

func TestSearchEscapesQuery(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`[]`))
	})

	items, err := c.Search(context.Background(), "blue backpack & keys")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, "blue backpack & keys", gotQuery)
}

func TestReportFoundWithoutImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/items/found", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"ok","item_id":7,"item":{"id":7,"title":"Blue Backpack","category":"Other","location":"Library","type":"found","status":"found"}}`))
	})

	item, err := c.ReportFound(context.Background(), "tok", domain.ItemReport{
		Title:    "Blue Backpack",
		Category: "Other",
		Location: "Library",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, item.ID)
	assert.Equal(t, domain.ItemTypeFound, item.Type)
	assert.Equal(t, domain.ItemStatusFound, item.Status)
}

func TestReportLostFetchesItemWhenNotEmbedded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/items/lost":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"message":"Lost item reported successfully","item_id":12}`))
		case "/items/12":
			w.Write([]byte(`{"id":12,"title":"Phone","type":"lost","status":"lost"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	item, err := c.ReportLost(context.Background(), "tok", domain.ItemReport{
		Title:    "Phone",
		Category: "Electronics",
		Location: "Gym",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, item.ID)
	assert.Equal(t, domain.ItemTypeLost, item.Type)
}

func TestReportFoundWithImageUsesMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/items/found", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"), "content type %q", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Blue Backpack", r.FormValue("title"))
		assert.Equal(t, "Library", r.FormValue("location"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "bag.jpg", header.Filename)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"ok","item_id":8,"item":{"id":8,"type":"found","status":"found"}}`))
	})

	item, err := c.ReportFound(context.Background(), "tok", domain.ItemReport{
		Title:    "Blue Backpack",
		Category: "Other",
		Location: "Library",
	}, &Upload{Filename: "bag.jpg", Content: strings.NewReader("jpegbytes")})
	require.NoError(t, err)
	assert.Equal(t, 8, item.ID)
}

func TestUpdateStatusReturnsServerCopy(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/items/5/status", r.URL.Path)
		w.Write([]byte(`{"id":5,"status":"claimed"}`))
	})

	item, err := c.UpdateStatus(context.Background(), "tok", 5, domain.ItemStatusClaimed)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemStatusClaimed, item.Status)
}
