package check

import (
	"fmt"
	"strings"

	"github.com/bebop/poly/transform"
)

// Hairpin scores self-complementary structure in a sequence as the sum of
// hydrogen bonds over perfect stems that can fold back on themselves.
type Hairpin struct {
	minStem int
	minLoop int
	maxLoop int
}

// NewHairpin returns a Hairpin counter for stems of minStem bases separated
// from their reverse complement by a loop of minLoop to maxLoop bases.
func NewHairpin(minStem, minLoop, maxLoop int) (*Hairpin, error) {
	if minStem < 1 {
		return nil, fmt.Errorf("hairpin stem must be at least 1bp, got %d", minStem)
	}
	if minLoop < 0 || maxLoop < minLoop {
		return nil, fmt.Errorf("invalid hairpin loop range [%d, %d]", minLoop, maxLoop)
	}
	return &Hairpin{minStem: minStem, minLoop: minLoop, maxLoop: maxLoop}, nil
}

// Score returns the bonds in every stem/loop/stem arrangement within seq. A
// longer stem is counted once per stem-length window it contains, so score
// grows with stem length. 0 means no predicted hairpin.
func (h *Hairpin) Score(seq string) float64 {
	seq = strings.ToUpper(seq)
	n := len(seq)
	k := h.minStem

	score := 0
	for i := 0; i+2*k+h.minLoop <= n; i++ {
		stem := seq[i : i+k]
		rc := transform.ReverseComplement(stem)
		for loop := h.minLoop; loop <= h.maxLoop; loop++ {
			j := i + k + loop
			if j+k > n {
				break
			}
			if seq[j:j+k] == rc {
				score += bonds(stem)
			}
		}
	}
	return float64(score)
}

// bonds is the number of hydrogen bonds a stem makes when paired
func bonds(stem string) int {
	b := 0
	for i := 0; i < len(stem); i++ {
		switch stem[i] {
		case 'G', 'C':
			b += 3
		case 'A', 'T':
			b += 2
		}
	}
	return b
}
