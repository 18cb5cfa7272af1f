package domain

// BlockKind tells describe groups apart from individual tests
type BlockKind string

const (
	KindRoot     BlockKind = "root"
	KindDescribe BlockKind = "describe"
	KindTest     BlockKind = "test"
)

// Block represents a describe/test/it call in a test file.
// Lines are 1-based and inclusive.
type Block struct {
	Kind     BlockKind `json:"kind"`
	Name     string    `json:"name"`
	Start    int       `json:"start"`
	End      int       `json:"end"`
	Children []*Block  `json:"children,omitempty"`
}

// Contains reports whether line falls inside the block's range
func (b *Block) Contains(line int) bool {
	return line >= b.Start && line <= b.End
}

// CountTests returns the number of test blocks below b (b included)
func (b *Block) CountTests() int {
	count := 0
	if b.Kind == KindTest {
		count++
	}
	for _, c := range b.Children {
		count += c.CountTests()
	}
	return count
}

// TestFile is the block tree of a single source file
type TestFile struct {
	Path string // Path the source was read from
	Root *Block // Synthetic root owning all top-level blocks
}

// Blocks returns the top-level blocks of the file
func (f *TestFile) Blocks() []*Block {
	if f == nil || f.Root == nil {
		return nil
	}
	return f.Root.Children
}
