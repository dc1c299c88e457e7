package check

// EditDistance is the Levenshtein distance between s and t: the fewest
// single byte insertions, deletions and substitutions that turn s into t.
func EditDistance(s, t string) int {
	prev := make([]int, len(t)+1)
	curr := make([]int, len(t)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s); i++ {
		curr[0] = i
		for j := 1; j <= len(t); j++ {
			sub := prev[j-1]
			if s[i-1] != t[j-1] {
				sub++
			}
			curr[j] = min(sub, prev[j]+1, curr[j-1]+1)
		}
		prev, curr = curr, prev
	}
	return prev[len(t)]
}
