package calc_go

import "strings"

const kMaxValidEditDistance = 2

// / Levenshtein distance between s1 and s2, capped at maxEditDistance+1 once
// / every cell of a row exceeds the cap (0 disables the cap).
func EditDistance(s1, s2 string, allowReplacements bool, maxEditDistance int) int {
	m, n := len(s1), len(s2)

	row := make([]int, n+1)
	for x := 1; x <= n; x++ {
		row[x] = x
	}

	for y := 1; y <= m; y++ {
		row[0] = y
		bestThisRow := row[0]

		previous := y - 1
		for x := 1; x <= n; x++ {
			oldRow := row[x]
			switch {
			case s1[y-1] == s2[x-1]:
				row[x] = previous
			case allowReplacements:
				row[x] = min(previous, row[x-1], row[x]) + 1
			default:
				row[x] = min(row[x-1], row[x]) + 1
			}
			previous = oldRow
			bestThisRow = min(bestThisRow, row[x])
		}

		if maxEditDistance != 0 && bestThisRow > maxEditDistance {
			return maxEditDistance + 1
		}
	}

	return row[n]
}

// / Closest word to text within kMaxValidEditDistance, or "".
func SpellcheckStringV(text string, words []string) string {
	minDistance := kMaxValidEditDistance + 1
	result := ""
	for _, w := range words {
		distance := EditDistance(w, text, true, kMaxValidEditDistance)
		if distance < minDistance {
			minDistance = distance
			result = w
		}
	}
	return result
}

// / Suggest a multi-letter operation token for a mistyped word.
func SpellcheckOperation(word string) string {
	words := []string{}
	for _, t := range kOpTokens {
		if len(t.Token) > 1 {
			words = append(words, t.Token)
		}
	}
	return SpellcheckStringV(strings.ToUpper(word), words)
}
