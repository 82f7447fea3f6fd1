package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.wayfind.dev/docsite/internal/content"
	"go.wayfind.dev/docsite/internal/html"
)

func TestBuildIndex(t *testing.T) {
	t.Parallel()

	ix := BuildIndex([]*content.Document{
		{Path: "", Title: "Wayfind"},
		{Path: "guides/nesting", Title: "Nested Routes", Synopsis: "Routes inside routes."},
		{Path: "guides/redirects", Title: "Redirects"},
		{Path: "api/use-route", Title: "useRoute"},
	})

	assert.Equal(t, []string{
		"",
		"api",
		"api/use-route",
		"guides",
		"guides/nesting",
		"guides/redirects",
	}, ix.Paths())

	t.Run("home lists top-level entries", func(t *testing.T) {
		home, ok := ix.Page("")
		require.True(t, ok)
		assert.Equal(t, "Wayfind", home.Title)
		assert.Equal(t, []html.Subpage{
			{RelativePath: "api", Title: "Api"},
			{RelativePath: "guides", Title: "Guides"},
		}, home.Subpages)
	})

	t.Run("document page", func(t *testing.T) {
		info, ok := ix.Page("guides/nesting")
		require.True(t, ok)
		assert.Equal(t, "Nested Routes", info.Title)
		assert.Equal(t, []html.Breadcrumb{
			{Text: "guides", Path: "guides"},
			{Text: "nesting", Path: "guides/nesting"},
		}, info.Breadcrumbs)
	})

	t.Run("section listing", func(t *testing.T) {
		idx, ok := ix.Section("guides")
		require.True(t, ok)
		assert.Equal(t, []html.Subpage{
			{RelativePath: "nesting", Title: "Nested Routes", Synopsis: "Routes inside routes."},
			{RelativePath: "redirects", Title: "Redirects"},
		}, idx.Subpages)
	})

	t.Run("unknown path", func(t *testing.T) {
		_, ok := ix.Page("guides/missing")
		assert.False(t, ok)

		_, ok = ix.Section("guides/missing")
		assert.False(t, ok)
	})
}

func TestBuildIndex_noHomeDocument(t *testing.T) {
	t.Parallel()

	ix := BuildIndex([]*content.Document{
		{Path: "install", Title: "Installation"},
	})

	_, ok := ix.Page("")
	assert.False(t, ok, "no home document was given")

	idx, ok := ix.Section("")
	require.True(t, ok, "home falls back to a listing")
	assert.Equal(t, []html.Subpage{
		{RelativePath: "install", Title: "Installation"},
	}, idx.Subpages)
}

func TestBuildIndex_siblingBreadcrumbs(t *testing.T) {
	t.Parallel()

	// Siblings at the same depth must not overwrite
	// each other's breadcrumb trails.
	ix := BuildIndex([]*content.Document{
		{Path: "a/x", Title: "X"},
		{Path: "a/y", Title: "Y"},
	})

	x, ok := ix.Page("a/x")
	require.True(t, ok)
	y, ok := ix.Page("a/y")
	require.True(t, ok)

	assert.Equal(t, "x", x.Breadcrumbs[len(x.Breadcrumbs)-1].Text)
	assert.Equal(t, "y", y.Breadcrumbs[len(y.Breadcrumbs)-1].Text)
}
