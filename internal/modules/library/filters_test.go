package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFallsBackToEnglish(t *testing.T) {
	full := LocalizedString{EN: "Habits", HI: "आदतें", MR: "सवयी"}
	assert.Equal(t, "आदतें", Resolve(full, LangHindi))
	assert.Equal(t, "सवयी", Resolve(full, LangMarathi))
	assert.Equal(t, "Habits", Resolve(full, LangEnglish))

	partial := LocalizedString{EN: "Habits"}
	assert.Equal(t, "Habits", Resolve(partial, LangHindi))
	assert.Equal(t, "Habits", Resolve(partial, LangMarathi))

	assert.Equal(t, "Habits", Resolve(partial, Language("xx")))
}

func TestFilterByCategoryExcludesFeatured(t *testing.T) {
	all := []BookSummary{
		{ID: "a", Category: "Productivity", IsFeatured: true},
		{ID: "b", Category: "Productivity"},
		{ID: "c", Category: "productivity"},
		{ID: "d", Category: "Purpose"},
	}

	got := FilterByCategory(all, "Productivity")
	require := assert.New(t)
	require.Len(got, 1)
	require.Equal("b", got[0].ID)
}

func TestFeaturedKeepsCatalogOrder(t *testing.T) {
	all := []BookSummary{
		{ID: "a", IsFeatured: true},
		{ID: "b"},
		{ID: "c", IsFeatured: true},
	}

	got := Featured(all)
	assert.Equal(t, []string{"a", "c"}, []string{got[0].ID, got[1].ID})
}

func TestCategoriesDistinctFirstSeen(t *testing.T) {
	all := []BookSummary{
		{ID: "a", Category: "Purpose"},
		{ID: "b", Category: "Productivity"},
		{ID: "c", Category: "Purpose"},
		{ID: "d"},
	}

	assert.Equal(t, []string{"Purpose", "Productivity"}, Categories(all))
}

func TestValidCoverImage(t *testing.T) {
	assert.True(t, ValidCoverImage("https://cdn.example.com/cover.png"))
	assert.True(t, ValidCoverImage("http://cdn.example.com/cover.png"))

	assert.False(t, ValidCoverImage(""))
	assert.False(t, ValidCoverImage("cover.png"))
	assert.False(t, ValidCoverImage("ftp://cdn.example.com/cover.png"))
	assert.False(t, ValidCoverImage("data:image/png;base64,AAAA"))
	assert.False(t, ValidCoverImage("https://"))
}

func TestResolveSummary(t *testing.T) {
	s := BookSummary{
		ID:         "ikigai",
		Title:      LocalizedString{EN: "Ikigai", MR: "इकिगाई"},
		Author:     "Héctor García",
		Content:    LocalizedString{EN: "Reason for being."},
		Punchline:  LocalizedString{EN: "Find your why.", MR: "तुमचे का शोधा."},
		Category:   "Purpose",
		CoverImage: "https://cdn.example.com/ikigai.png",
	}

	view := ResolveSummary(s, LangMarathi)
	assert.Equal(t, "इकिगाई", view.Title)
	assert.Equal(t, "Reason for being.", view.Content)
	assert.Equal(t, "तुमचे का शोधा.", view.Punchline)
	assert.Equal(t, "https://cdn.example.com/ikigai.png", view.CoverImage)
}

func TestLocalizedStringComplete(t *testing.T) {
	assert.True(t, LocalizedString{EN: "a", HI: "b", MR: "c"}.Complete())
	assert.False(t, LocalizedString{EN: "a", MR: "c"}.Complete())
}
