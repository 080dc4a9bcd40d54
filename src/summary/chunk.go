package summary

// Chunk hard-slices text into pieces of at most ceiling runes, with no regard for word
// boundaries. Every piece but the last is exactly ceiling runes long.
func Chunk(text string, ceiling int) []string {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if ceiling <= 0 || len(runes) <= ceiling {
		return []string{text}
	}

	chunks := make([]string, 0, (len(runes)+ceiling-1)/ceiling)
	for len(runes) > ceiling {
		chunks = append(chunks, string(runes[:ceiling]))
		runes = runes[ceiling:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}

// Truncate cuts text to ceiling runes and reports how many were dropped.
func Truncate(text string, ceiling int) (string, int) {
	runes := []rune(text)
	if ceiling <= 0 || len(runes) <= ceiling {
		return text, 0
	}
	return string(runes[:ceiling]), len(runes) - ceiling
}
