package series

// Trim bounds buf to its last maxLength elements, evicting from the front.
// A maxLength of zero or less means unbounded. The result shares buf's
// backing array.
func Trim[T any](buf []T, maxLength int) []T {
	if maxLength <= 0 || len(buf) <= maxLength {
		return buf
	}

	return buf[len(buf)-maxLength:]
}
