package utils

// Truncate keeps the first limit characters (runes) of s and appends marker
// when it cuts.
func Truncate(s string, limit int, marker string) string {
	limit = max(limit, 0)
	if len(s) <= limit {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i] + marker
		}
		count++
	}
	return s
}

// LastN returns the trailing n elements of items, or all of them when there are fewer.
func LastN[T any](items []T, n int) []T {
	if n <= 0 {
		return nil
	}
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}

// FirstN returns the leading n elements of items, or all of them when there are fewer.
func FirstN[T any](items []T, n int) []T {
	if n <= 0 {
		return nil
	}
	if len(items) <= n {
		return items
	}
	return items[:n]
}
