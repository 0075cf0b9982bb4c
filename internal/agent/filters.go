package agent

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"inmoportal/internal/storage"
	"inmoportal/internal/textutil"
)

// Price phrase grammar, applied to the normalized (lowercase, accent-free)
// message in priority order: explicit range, then open-ended bounds, then a
// bare "UF N" treated as an exact point.
var (
	priceRangeRe = regexp.MustCompile(`(?:entre|desde)\s+(?:uf\s*\$?\s*)?(\d[\d.,]*)\s+(?:y|hasta|a)\s+(?:uf\s*\$?\s*)?(\d[\d.,]*)`)
	priceMinRe   = regexp.MustCompile(`desde\s+(?:uf\s*\$?\s*)?(\d[\d.,]*)`)
	priceMaxRe   = regexp.MustCompile(`hasta\s+(?:uf\s*\$?\s*)?(\d[\d.,]*)`)
	pricePointRe = regexp.MustCompile(`\buf\s*\$?\s*(\d[\d.,]*)`)
)

// Bedroom mentions: digit forms ("3 dormitorios", "2 habitaciones"),
// typology shorthand ("4D"), and a closed Spanish number-word vocabulary.
var (
	bedroomDigitRe = regexp.MustCompile(`(\d+)\s*(?:dormitorios?|habitacion(?:es)?|piezas?)`)
	bedroomTypoRe  = regexp.MustCompile(`\b(\d)d\b`)
	bedroomWordRe  = regexp.MustCompile(`\b(un|uno|una|dos|tres|cuatro|cinco|seis)\s+(?:dormitorios?|habitacion(?:es)?|piezas?)`)
)

var bedroomWords = map[string]int{
	"un": 1, "uno": 1, "una": 1,
	"dos": 2, "tres": 3, "cuatro": 4, "cinco": 5, "seis": 6,
}

// comunaAfterEnRe captures a capitalized phrase after "en " as a comuna
// guess when no known comuna matched ("vivo en Lo Barnechea").
var comunaAfterEnRe = regexp.MustCompile(`\ben\s+(\p{Lu}\p{Ll}+(?:\s+\p{Lu}\p{Ll}+)*)`)

// projectNameRe captures the phrase after "proyecto " up to a sentence-ish
// boundary.
var projectNameRe = regexp.MustCompile(`(?i)proyecto\s+([^.,;:!?\n]+)`)

// ExtractFilters parses a free-text Spanish message into structured catalog
// filters. It is a pure function: knownComunas supplies the comuna
// vocabulary, and absent fields mean "no constraint".
func ExtractFilters(message string, knownComunas []string) storage.Filters {
	var f storage.Filters
	normalized := textutil.Normalize(message)

	f.Comuna = extractComuna(message, normalized, knownComunas)
	f.MinPrice, f.MaxPrice = extractPriceRange(normalized)
	f.Dormitorios = extractBedrooms(normalized)
	f.Status = extractStatus(normalized)
	f.ProjectName = extractProjectName(message)

	return f
}

// extractComuna returns the first known comuna whose normalized form appears
// in the message. First match in list order wins; longest-match is not
// attempted. Falls back to a capitalized phrase after "en ".
func extractComuna(message, normalized string, knownComunas []string) string {
	for _, comuna := range knownComunas {
		nc := textutil.Normalize(comuna)
		if nc == "" {
			continue
		}
		if strings.Contains(normalized, nc) {
			return comuna
		}
	}

	if m := comunaAfterEnRe.FindStringSubmatch(message); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// extractPriceRange applies the price grammar in priority order.
func extractPriceRange(normalized string) (min, max *float64) {
	if m := priceRangeRe.FindStringSubmatch(normalized); m != nil {
		return parseLatinNumber(m[1]), parseLatinNumber(m[2])
	}

	if m := priceMinRe.FindStringSubmatch(normalized); m != nil {
		min = parseLatinNumber(m[1])
	}
	if m := priceMaxRe.FindStringSubmatch(normalized); m != nil {
		max = parseLatinNumber(m[1])
	}
	if min != nil || max != nil {
		return min, max
	}

	// A lone "UF 3000" is an exact point filter.
	if m := pricePointRe.FindStringSubmatch(normalized); m != nil {
		if v := parseLatinNumber(m[1]); v != nil {
			w := *v
			return v, &w
		}
	}
	return nil, nil
}

// parseLatinNumber parses Latin-American formatted numerals: "." groups
// thousands, "," marks decimals ("2.500,50" -> 2500.5). Returns nil when the
// token is not a finite number.
func parseLatinNumber(tok string) *float64 {
	cleaned := strings.ReplaceAll(tok, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// extractBedrooms returns the sorted, deduplicated union of all bedroom
// mentions. 0 represents studio/loft units. An empty result means
// unconstrained.
func extractBedrooms(normalized string) []int {
	set := make(map[int]bool)

	for _, m := range bedroomDigitRe.FindAllStringSubmatch(normalized, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			set[n] = true
		}
	}
	for _, m := range bedroomTypoRe.FindAllStringSubmatch(normalized, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			set[n] = true
		}
	}
	for _, m := range bedroomWordRe.FindAllStringSubmatch(normalized, -1) {
		set[bedroomWords[m[1]]] = true
	}

	if strings.Contains(normalized, "studio") || strings.Contains(normalized, "loft") {
		set[0] = true
	}

	if len(set) == 0 {
		return nil
	}

	out := make([]int, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// extractStatus matches commercialization-status keywords in priority order.
func extractStatus(normalized string) string {
	switch {
	case strings.Contains(normalized, "en verde"):
		return "en verde"
	case strings.Contains(normalized, "entrega inmediata"),
		strings.Contains(normalized, "inmediata"):
		return "inmediata"
	case strings.Contains(normalized, "en blanco"):
		return "en blanco"
	}
	return ""
}

// extractProjectName captures an explicit project mention.
func extractProjectName(message string) string {
	if m := projectNameRe.FindStringSubmatch(message); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
