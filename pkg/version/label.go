// Package version handles document version labels.
//
// Labels are stored as decimal strings ("1", "2", ...) to match existing
// data, but all comparison and allocation is done on integers. Labels must
// never be compared lexically ("9" sorts after "10" as a string).
package version

import "strconv"

// ParseLabel parses a version label into an integer. Malformed or empty
// labels are coerced to 0 rather than raising an error, so a hand-corrupted
// label never blocks version allocation.
func ParseLabel(label string) int {
	n, err := strconv.Atoi(label)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// FormatLabel formats an integer as a version label with no leading zeros.
func FormatLabel(n int) string {
	return strconv.Itoa(n)
}

// Compare compares two labels by numeric value. It returns a negative
// number if a < b, zero if equal, and a positive number if a > b.
func Compare(a, b string) int {
	return ParseLabel(a) - ParseLabel(b)
}

// NextLabel computes the next version label for a document given its
// current label and the labels of all of its archived versions.
//
// The result is the high-water mark across both the live and archived sets
// plus one, so labels stay strictly monotonic even after a restore promoted
// an old version or an archived version was deleted. A plain counter on the
// live row would hand out duplicates in those cases.
func NextLabel(current string, archived []string) string {
	max := ParseLabel(current)
	for _, a := range archived {
		if n := ParseLabel(a); n > max {
			max = n
		}
	}
	return FormatLabel(max + 1)
}
