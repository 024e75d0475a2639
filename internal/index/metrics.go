package index

import (
	"sort"
	"strconv"
	"strings"
)

// Citations parses a citation count, treating anything that is not a
// non-negative integer as zero.
func Citations(note string) int {
	n, err := strconv.Atoi(strings.TrimSpace(note))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// HIndex is the largest h such that h of the counts are at least h.
func HIndex(counts []int) int {
	sorted := descending(counts)
	h := 0
	for i, c := range sorted {
		if c < i+1 {
			break
		}
		h = i + 1
	}
	return h
}

// GIndex is the largest g such that the top g counts sum to at least g².
// g never exceeds the number of documents.
func GIndex(counts []int) int {
	sorted := descending(counts)
	g, sum := 0, 0
	for i, c := range sorted {
		sum += c
		if sum < (i+1)*(i+1) {
			break
		}
		g = i + 1
	}
	return g
}

func descending(counts []int) []int {
	sorted := make([]int, len(counts))
	copy(sorted, counts)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	return sorted
}
