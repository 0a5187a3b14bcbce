// Package textchunk splits extracted document text into fixed-size overlapping
// chunks for storage and later retrieval.
package textchunk

const (
	// DefaultChunkSize is the chunk length in runes.
	DefaultChunkSize = 500
	// DefaultOverlap is how many trailing runes of one chunk repeat at the
	// start of the next, so sentences cut at a boundary stay searchable.
	DefaultOverlap = 50
)

// Split cuts text into chunks of at most size runes, each overlapping the
// previous one by overlap runes. Invalid parameters fall back to the defaults.
func Split(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultOverlap
		if overlap >= size {
			overlap = size / 10
		}
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= size {
		return []string{text}
	}

	step := size - overlap
	chunks := make([]string, 0, (len(runes)+step-1)/step)
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
