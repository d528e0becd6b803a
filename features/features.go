// Package features derives structured signals from free-text incident
// descriptions and scores the similarity of two reports' features and
// contexts. It has no side effects and is safe to compute speculatively: the
// dedup transaction does not consult it today, a future split policy might.
package features

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/goldjoker92/vigiApp-sub000/types"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalize(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// containsAny is a word-boundary match of any lexicon term against
// already-normalized text. Multi-word terms match as phrases.
func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if containsTerm(text, term) {
			return true
		}
	}
	return false
}

func containsTerm(text, term string) bool {
	for i := 0; ; {
		j := strings.Index(text[i:], term)
		if j < 0 {
			return false
		}
		at := i + j
		end := at + len(term)
		startOK := at == 0 || !isWordByte(text[at-1])
		endOK := end >= len(text) || !isWordByte(text[end])
		if startOK && endOK {
			return true
		}
		i = at + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

// ExtractTextFeatures scans a description for weapon, victim, incident-type
// and count signals. Input may be PT or FR, accented or not.
func ExtractTextFeatures(text string) types.FeatureVector {
	t := normalize(text)

	fv := types.FeatureVector{
		HasWeapon:         containsAny(t, weaponTerms),
		IsBareHands:       containsAny(t, bareHandsTerms),
		IsRobbery:         containsAny(t, robberyTerms),
		HighFootfall:      containsAny(t, highFootfallTerms),
		IsAggression:      containsAny(t, aggressionTerms),
		IsFire:            containsAny(t, fireTerms),
		IsTrafficIncident: containsAny(t, trafficTerms),
		IsDrowning:        containsAny(t, drowningTerms),
		IsFracture:        containsAny(t, fractureTerms),
		Victim:            victimCategory(t),
		VictimCount:       victimCount(t),
	}
	fv.Violence = violenceLevel(t, fv)
	return fv
}

func victimCategory(t string) types.VictimCategory {
	for _, vt := range victimTerms {
		if containsTerm(t, vt.term) {
			return types.VictimCategory(vt.category)
		}
	}
	for _, noun := range victimNouns {
		if containsTerm(t, noun) {
			return types.VictimGeneric
		}
	}
	return ""
}

// violenceLevel is a coarse 0..3 scale: 3 deadly or armed, 2 physical
// aggression, 1 property crime, 0 otherwise.
func violenceLevel(t string, fv types.FeatureVector) int {
	switch {
	case containsAny(t, deadlyTerms) || fv.HasWeapon:
		return 3
	case fv.IsAggression || fv.IsBareHands:
		return 2
	case fv.IsRobbery:
		return 1
	default:
		return 0
	}
}

// victimCount parses "dois feridos" / "3 vitimas" style phrases: a digit or
// number word followed within two tokens by a victim noun.
func victimCount(t string) int {
	tokens := strings.FieldsFunc(t, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, tok := range tokens {
		n := 0
		if v, ok := numberWords[tok]; ok {
			n = v
		} else if v, err := strconv.Atoi(tok); err == nil && v > 0 && v < 1000 {
			n = v
		}
		if n == 0 {
			continue
		}
		for j := i + 1; j <= i+2 && j < len(tokens); j++ {
			for _, noun := range victimNouns {
				if tokens[j] == noun {
					return n
				}
			}
		}
	}
	return 0
}
