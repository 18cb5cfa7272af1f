package discovery

import (
	"strings"

	"jtr/internal/domain"
)

// FindBlockPath returns the chain of blocks enclosing line, outermost first.
// Siblings are scanned in order and the first one containing the line wins,
// so overlapping ranges from a degenerate tree resolve to the earlier block.
// Returns nil when no block contains the line.
func FindBlockPath(line int, blocks []*domain.Block) []*domain.Block {
	for _, block := range blocks {
		if !block.Contains(line) {
			continue
		}
		return append([]*domain.Block{block}, FindBlockPath(line, block.Children)...)
	}
	return nil
}

// FindFullTestName returns the space-joined names of the blocks enclosing
// line. The second result is false when the line is outside every block,
// in which case the whole file should be run instead.
func FindFullTestName(line int, blocks []*domain.Block) (string, bool) {
	path := FindBlockPath(line, blocks)
	if len(path) == 0 {
		return "", false
	}
	return JoinNames(path), true
}

// JoinNames joins block names outermost first
func JoinNames(path []*domain.Block) string {
	names := make([]string, len(path))
	for i, block := range path {
		names[i] = block.Name
	}
	return strings.Join(names, " ")
}

// FullTestNames returns the full name of every test block, in source order
func FullTestNames(blocks []*domain.Block) []string {
	var names []string
	var walk func(path []*domain.Block, blocks []*domain.Block)
	walk = func(path []*domain.Block, blocks []*domain.Block) {
		for _, block := range blocks {
			current := append(path[:len(path):len(path)], block)
			if block.Kind == domain.KindTest {
				names = append(names, JoinNames(current))
			}
			walk(current, block.Children)
		}
	}
	walk(nil, blocks)
	return names
}
