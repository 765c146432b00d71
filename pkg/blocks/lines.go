package blocks

// ExtractLines returns the literal text of every LINE block, in source order.
// Lines without text contribute "".
func ExtractLines(blocks []Block) []string {
	lines := make([]string, 0)
	for _, b := range blocks {
		if b.BlockType == BlockTypeLine {
			lines = append(lines, b.TextOrEmpty())
		}
	}
	return lines
}
