package summary

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunkCounts(t *testing.T) {
	cases := []struct {
		length, ceiling int
		want            []int
	}{
		{5000, 2000, []int{2000, 2000, 1000}},
		{4096, 4096, []int{4096}},
		{4097, 4096, []int{4096, 1}},
		{8192, 4096, []int{4096, 4096}},
		{10, 4096, []int{10}},
	}
	for _, tc := range cases {
		chunks := Chunk(strings.Repeat("a", tc.length), tc.ceiling)
		if len(chunks) != len(tc.want) {
			t.Errorf("len %d ceiling %d: %d chunks, want %d", tc.length, tc.ceiling, len(chunks), len(tc.want))
			continue
		}
		for i, c := range chunks {
			if len(c) != tc.want[i] {
				t.Errorf("len %d ceiling %d: chunk %d has %d chars, want %d", tc.length, tc.ceiling, i, len(c), tc.want[i])
			}
		}
	}
}

func TestChunkRuneSafe(t *testing.T) {
	text := strings.Repeat("é", 7)
	chunks := Chunk(text, 3)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks", len(chunks))
	}
	for i, c := range chunks {
		if !utf8.ValidString(c) {
			t.Errorf("chunk %d is not valid UTF-8", i)
		}
	}
	if strings.Join(chunks, "") != text {
		t.Error("chunks do not reassemble the input")
	}
}

func TestChunkEmpty(t *testing.T) {
	if chunks := Chunk("", 10); len(chunks) != 0 {
		t.Errorf("expected no chunks, got %v", chunks)
	}
}

func TestTruncate(t *testing.T) {
	out, dropped := Truncate(strings.Repeat("x", 5000), 4096)
	if len(out) != 4096 || dropped != 904 {
		t.Errorf("len=%d dropped=%d", len(out), dropped)
	}
	out, dropped = Truncate("short", 4096)
	if out != "short" || dropped != 0 {
		t.Errorf("out=%q dropped=%d", out, dropped)
	}
}
