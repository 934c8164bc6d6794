package library

import neturl "net/url"

// Resolve returns the translation for lang, falling back to English when the
// requested entry is absent or empty.
func Resolve(l LocalizedString, lang Language) string {
	var v string
	switch lang {
	case LangHindi:
		v = l.HI
	case LangMarathi:
		v = l.MR
	default:
		v = l.EN
	}
	if v == "" {
		return l.EN
	}
	return v
}

// ResolvedView is a summary flattened to a single language.
type ResolvedView struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Author     string   `json:"author"`
	Content    string   `json:"content"`
	Keywords   []string `json:"keywords"`
	Category   string   `json:"category"`
	IsFeatured bool     `json:"isFeatured,omitempty"`
	Punchline  string   `json:"punchline"`
	CoverImage string   `json:"coverImage"`
}

// ResolveSummary flattens all localized fields of s to lang.
func ResolveSummary(s BookSummary, lang Language) ResolvedView {
	return ResolvedView{
		ID:         s.ID,
		Title:      Resolve(s.Title, lang),
		Author:     s.Author,
		Content:    Resolve(s.Content, lang),
		Keywords:   s.Keywords,
		Category:   s.Category,
		IsFeatured: s.IsFeatured,
		Punchline:  Resolve(s.Punchline, lang),
		CoverImage: s.CoverImage,
	}
}

// FilterByCategory returns the summaries in category (case-sensitive match),
// excluding featured items, which the grid shows separately.
func FilterByCategory(all []BookSummary, category string) []BookSummary {
	out := make([]BookSummary, 0, len(all))
	for _, s := range all {
		if s.IsFeatured {
			continue
		}
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// Featured returns the featured summaries in catalog order.
func Featured(all []BookSummary) []BookSummary {
	out := make([]BookSummary, 0, len(all))
	for _, s := range all {
		if s.IsFeatured {
			out = append(out, s)
		}
	}
	return out
}

// Categories returns the distinct category names in first-seen order.
func Categories(all []BookSummary) []string {
	seen := make(map[string]struct{}, len(all))
	out := make([]string, 0, len(all))
	for _, s := range all {
		if s.Category == "" {
			continue
		}
		if _, ok := seen[s.Category]; ok {
			continue
		}
		seen[s.Category] = struct{}{}
		out = append(out, s.Category)
	}
	return out
}

// ValidCoverImage reports whether raw is an absolute URL usable as an image
// source. Anything else is a missing-image condition, not an error.
func ValidCoverImage(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := neturl.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
