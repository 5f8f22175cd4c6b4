package main

import (
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

func statusWord(success bool) string {
	if success {
		return "ok"
	}
	return "failed"
}

func formatSize(size int64) string {
	if size < 0 {
		return "?"
	}
	return humanize.IBytes(uint64(size))
}

// truncate shortens s to at most max runes, never splitting a multi-byte rune.
func truncate(s string, max int) string {
	if max <= 3 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
