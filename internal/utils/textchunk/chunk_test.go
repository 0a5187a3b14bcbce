package textchunk

import (
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		size       int
		overlap    int
		wantChunks int
	}{
		{
			name:       "empty text yields nothing",
			text:       "",
			size:       500,
			overlap:    50,
			wantChunks: 0,
		},
		{
			name:       "short text is a single chunk",
			text:       "hello world",
			size:       500,
			overlap:    50,
			wantChunks: 1,
		},
		{
			name:       "exact size is a single chunk",
			text:       strings.Repeat("a", 500),
			size:       500,
			overlap:    50,
			wantChunks: 1,
		},
		{
			name:       "one rune over size splits in two",
			text:       strings.Repeat("a", 501),
			size:       500,
			overlap:    50,
			wantChunks: 2,
		},
		{
			name:       "1000 runes with step 450 takes three chunks",
			text:       strings.Repeat("a", 1000),
			size:       500,
			overlap:    50,
			wantChunks: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Split(tt.text, tt.size, tt.overlap)
			if len(chunks) != tt.wantChunks {
				t.Fatalf("Split() produced %d chunks, want %d", len(chunks), tt.wantChunks)
			}
			for i, c := range chunks {
				if len([]rune(c)) > tt.size {
					t.Errorf("chunk %d has %d runes, exceeds size %d", i, len([]rune(c)), tt.size)
				}
			}
		})
	}
}

func TestSplit_Overlap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 120; i++ {
		b.WriteByte(byte('a' + i%26))
	}
	text := b.String()

	chunks := Split(text, 50, 10)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		tail := string(prev[len(prev)-10:])
		if !strings.HasPrefix(chunks[i], tail) {
			t.Errorf("chunk %d does not start with the previous chunk's 10-rune tail", i)
		}
	}
}

func TestSplit_InvalidParamsFallBack(t *testing.T) {
	text := strings.Repeat("x", 1200)
	if got := Split(text, 0, -1); len(got) == 0 {
		t.Error("invalid params should fall back to defaults, not drop text")
	}
	// overlap >= size must not loop forever
	if got := Split(text, 10, 10); len(got) == 0 {
		t.Error("overlap equal to size should be corrected")
	}
}
