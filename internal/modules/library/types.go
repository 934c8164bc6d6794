package library

// Language is a supported UI language code.
type Language string

const (
	LangEnglish Language = "en"
	LangHindi   Language = "hi"
	LangMarathi Language = "mr"
)

// DefaultLanguage is the language preselected for new clients.
const DefaultLanguage = LangMarathi

// Supported reports whether code is a known language code.
func Supported(code Language) bool {
	switch code {
	case LangEnglish, LangHindi, LangMarathi:
		return true
	}
	return false
}

// LocalizedString carries one string per supported language. Consumers fall
// back to English when the requested entry is absent or empty.
type LocalizedString struct {
	EN string `json:"en"`
	HI string `json:"hi"`
	MR string `json:"mr"`
}

// Complete reports whether all three translations are present.
func (l LocalizedString) Complete() bool {
	return l.EN != "" && l.HI != "" && l.MR != ""
}

// BookSummary is the core content entity. Records are created by an external
// editorial pipeline and are read-only at runtime.
type BookSummary struct {
	ID         string          `json:"id"`
	Title      LocalizedString `json:"title"`
	Author     string          `json:"author"`
	Content    LocalizedString `json:"content"`
	Keywords   []string        `json:"keywords"`
	Category   string          `json:"category"`
	IsFeatured bool            `json:"isFeatured,omitempty"`
	Punchline  LocalizedString `json:"punchline"`
	CoverImage string          `json:"coverImage"`
}
