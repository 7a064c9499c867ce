package catalog

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	HitTypePharmacy = "pharmacy"
	HitTypeMask     = "mask"
)

// SearchHit is one ranked result of a keyword search across pharmacy and mask
// names. Relevance is the keyword-length-to-name-length ratio, so a keyword
// covering more of the matched name ranks higher.
type SearchHit struct {
	Type      string
	Name      string
	Relevance float64
}

// RankNames matches keyword case-insensitively as a substring against both
// name lists and returns the hits sorted by relevance descending. Pharmacy and
// mask hits share one ranked list; ties keep pharmacy-before-mask insertion
// order (stable sort).
func RankNames(keyword string, pharmacyNames, maskNames []string) []SearchHit {
	needle := strings.ToLower(keyword)
	keywordLen := utf8.RuneCountInString(keyword)

	var hits []SearchHit
	for _, name := range pharmacyNames {
		if strings.Contains(strings.ToLower(name), needle) {
			hits = append(hits, SearchHit{
				Type:      HitTypePharmacy,
				Name:      name,
				Relevance: float64(keywordLen) / float64(utf8.RuneCountInString(name)),
			})
		}
	}
	for _, name := range maskNames {
		if strings.Contains(strings.ToLower(name), needle) {
			hits = append(hits, SearchHit{
				Type:      HitTypeMask,
				Name:      name,
				Relevance: float64(keywordLen) / float64(utf8.RuneCountInString(name)),
			})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Relevance > hits[j].Relevance
	})

	return hits
}
