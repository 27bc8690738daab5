package compile

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/kribrum-os/gomorph/dictionary"
	"github.com/kribrum-os/gomorph/grammeme"
	"github.com/kribrum-os/gomorph/morpherr"
)

// extractParadigms derives postfix-signature paradigms from every lemma
// row's collected spellings, the way Pymorphy2-style OOV prediction learns
// its analogy rules from the dictionary itself instead of hand-written
// grammar tables.
//
// For each row: find the longest common substring across all its spellings
// as the candidate stem, strip Other-category grammemes (too idiosyncratic
// per-lemma to generalize), and record each spelling's postfix (<=5 runes)
// together with its tag. Rows sharing an identical postfix signature are
// merged, their count is the paradigm's popularity, and paradigms seen
// fewer than three times are dropped as noise -- the same threshold
// Pymorphy2 uses to avoid overfitting on one-off dictionary entries.
func extractParadigms(rowVariants [][]rowVariant, tags []grammeme.Tag, tagIndex func(grammeme.Tag) (int, error)) ([]dictionary.Paradigm, error) {
	popularity := make(map[string]int)
	itemsByKey := make(map[string][]dictionary.ParadigmItem)

	for _, variants := range rowVariants {
		if len(variants) == 0 {
			continue
		}
		if variants[0].tag.IsUnproductive() {
			continue
		}

		words := make([]string, len(variants))
		for i, v := range variants {
			words[i] = v.word
		}
		stem := strings.ToLower(longestCommonSubstring(words))
		if len([]rune(stem)) < 3 {
			continue
		}

		var items []dictionary.ParadigmItem
		for _, v := range variants {
			if len(v.tag) == 0 {
				continue
			}
			stripped := v.tag.Strip(grammeme.CategoryOther)
			word := strings.ReplaceAll(v.word, "ё", "е")
			idx := strings.Index(word, stem)
			if idx < 0 {
				// The row's common stem isn't literally present in this
				// spelling (suppletive forms like "человек"/"люди", or the
				// longest-common-substring pass choosing a stem that one
				// outlier variant doesn't share); it simply contributes
				// nothing to the paradigm.
				err := &morpherr.StemMismatchError{Stem: stem, Word: word}
				log.Debug().Err(err).Msg("vanga: skipping variant")
				continue
			}
			postfix := word[idx+len(stem):]
			if n := len([]rune(postfix)); n == 0 || n > 5 {
				continue
			}
			tid, err := tagIndex(stripped)
			if err != nil {
				return nil, err
			}
			items = append(items, dictionary.ParadigmItem{
				Postfix: postfix,
				Form:    v.form.ToVanga(),
				TagIDs:  []uint32{uint32(tid)},
			})
		}
		if len(items) == 0 {
			continue
		}

		key := paradigmKey(items)
		popularity[key]++
		itemsByKey[key] = items
	}

	out := make([]dictionary.Paradigm, 0, len(popularity))
	for key, count := range popularity {
		if count < 3 {
			continue
		}
		out = append(out, dictionary.Paradigm{Popularity: uint64(count), Postfixes: itemsByKey[key]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Popularity > out[j].Popularity })
	return out, nil
}

func paradigmKey(items []dictionary.ParadigmItem) string {
	var sb strings.Builder
	for _, it := range items {
		sb.WriteString(it.Postfix)
		sb.WriteByte('|')
		sb.WriteString(strconv.Itoa(int(it.Form)))
		sb.WriteByte('|')
		for _, t := range it.TagIDs {
			sb.WriteString(strconv.Itoa(int(t)))
			sb.WriteByte(',')
		}
		sb.WriteByte(';')
	}
	return sb.String()
}

// longestCommonSubstring finds the longest run of characters shared by every
// string in data, after folding ё to е (the two are often dictionary
// spelling variants of the same morpheme).
func longestCommonSubstring(data []string) string {
	folded := make([]string, len(data))
	for i, w := range data {
		folded[i] = strings.ReplaceAll(w, "ё", "е")
	}

	switch len(folded) {
	case 0:
		return ""
	case 1:
		return folded[0]
	}

	base := []rune(folded[0])
	var subString, bestMatch []rune

	for _, ch := range base {
		subString = append(subString, ch)

		for _, word := range folded[1:] {
			if strings.Contains(word, string(subString)) {
				if len(subString) > len(bestMatch) {
					bestMatch = append([]rune(nil), subString...)
				}
			} else {
				if len(subString) == len(bestMatch) && strings.Contains(string(bestMatch), string(subString)) {
					if len(bestMatch) > 0 {
						bestMatch = bestMatch[:len(bestMatch)-1]
					}
				}
				subString = nil
				break
			}
		}
	}

	return string(bestMatch)
}
