package agent

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"inmoportal/internal/storage"
	"inmoportal/internal/textutil"
)

// notAvailable is the placeholder for missing catalog fields. The model is
// instructed to repeat it rather than fill gaps.
const notAvailable = "Dato no disponible"

// typologyTokenRe matches bedroom-count tokens inside a typology string
// ("1D1B, 2D2B" -> 1, 2).
var typologyTokenRe = regexp.MustCompile(`(?i)(\d+)D`)

var slugCleanRe = regexp.MustCompile(`[^a-z0-9]+`)

// BuildContext renders matched projects into the numbered text block handed
// to the model. Each record is a fixed seven-line block; blocks are joined by
// a blank line. Input order is preserved.
func BuildContext(records []storage.Project, siteBaseURL string) string {
	blocks := make([]string, 0, len(records))
	for i, p := range records {
		lines := []string{
			fmt.Sprintf("%d. %s", i+1, p.Name),
			"Comuna: " + fallback(p.Comuna),
			"Dirección: " + fallback(p.Address),
			"Estado: " + fallback(p.Status),
			"Precio: " + FormatPriceRange(p.UFMin, p.UFMax),
			"Dormitorios: " + BedroomSummary(p.Tipologias),
			"Link: " + CanonicalLink(p, siteBaseURL),
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func fallback(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

// FormatUF renders a UF amount as an integer with "." thousands grouping
// ("2.000"), no decimals. Chilean listings group from four digits on, which
// rules out CLDR-driven formatters (the es locale leaves 2000 ungrouped).
func FormatUF(v float64) string {
	n := int64(math.Round(v))
	s := strconv.FormatInt(n, 10)

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, ".")
	if neg {
		out = "-" + out
	}
	return out
}

// FormatPriceRange renders the UF price range of a project:
// equal bounds collapse to "UF N", a single bound keeps its direction, and
// no bounds at all yields the not-available placeholder.
func FormatPriceRange(min, max *float64) string {
	switch {
	case min != nil && max != nil && *min == *max:
		return "UF " + FormatUF(*min)
	case min != nil && max != nil:
		return fmt.Sprintf("Desde UF %s hasta UF %s", FormatUF(*min), FormatUF(*max))
	case min != nil:
		return "Desde UF " + FormatUF(*min)
	case max != nil:
		return "Hasta UF " + FormatUF(*max)
	}
	return notAvailable
}

// BedroomSummary derives a bedroom-count summary from the typology text.
// Tokens like "2D" are deduplicated and sorted ascending; when the text has
// no such tokens the raw string is returned as-is.
func BedroomSummary(tipologias string) string {
	if strings.TrimSpace(tipologias) == "" {
		return notAvailable
	}

	matches := typologyTokenRe.FindAllStringSubmatch(tipologias, -1)
	if len(matches) == 0 {
		return tipologias
	}

	set := make(map[int]bool)
	var counts []int
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil || set[n] {
			continue
		}
		set[n] = true
		counts = append(counts, n)
	}
	sort.Ints(counts)

	parts := make([]string, len(counts))
	for i, n := range counts {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ") + " dormitorios"
}

// CanonicalLink picks the project's public URL: explicit URL first, then the
// slug-based detail page, then a search link derived from comuna and name.
func CanonicalLink(p storage.Project, siteBaseURL string) string {
	base := strings.TrimRight(siteBaseURL, "/")
	if p.ProjectURL != "" {
		return p.ProjectURL
	}
	if p.Slug != "" {
		return base + "/proyectos/" + p.Slug
	}
	derived := Slugify(p.Comuna + " " + p.Name)
	return base + "/proyectos?buscar=" + url.QueryEscape(derived)
}

// Slugify builds a URL-safe slug from free text ("Ñuñoa Parque Oriente" ->
// "nunoa-parque-oriente").
func Slugify(s string) string {
	normalized := textutil.Normalize(s)
	slug := slugCleanRe.ReplaceAllString(normalized, "-")
	return strings.Trim(slug, "-")
}
