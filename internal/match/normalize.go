// Package match canonicalizes the free-text identifiers that marketplace
// and warehouse exports disagree on. Two values joined anywhere in the
// pipeline are equal iff they normalize to the same key here.
package match

import (
	"regexp"
	"strconv"
	"strings"
)

// Key canonicalizes an identifier cell. Blank and NaN-ish values become
// the empty string; otherwise one trailing ".0" is stripped (spreadsheet
// tools re-render integer codes as floats), embedded double quotes are
// removed, surrounding whitespace is trimmed, and the result is
// upper-cased.
func Key(value string) string {
	if strings.EqualFold(strings.TrimSpace(value), "nan") {
		return ""
	}
	value = strings.TrimSuffix(value, ".0")
	value = strings.ReplaceAll(value, `"`, "")
	value = strings.TrimSpace(value)
	return strings.ToUpper(value)
}

// BarcodeKey normalizes a barcode identifier. Long numeric barcodes get
// re-rendered in scientific notation by spreadsheet tools ("8.8E+12");
// when the cell still parses as a number, the integer form is
// reconstructed before the usual cleanup so it joins against the plain
// rendering in the catalog.
func BarcodeKey(value string) string {
	trimmed := strings.TrimSpace(value)
	if strings.ContainsAny(trimmed, "eE") {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return Key(strconv.FormatFloat(f, 'f', -1, 64))
		}
	}
	return Key(value)
}

// One ASCII letter used as a group-code prefix, immediately followed by
// decimal digits.
var groupCodePattern = regexp.MustCompile(`[A-Za-z][0-9]+`)

// GroupCode scans the candidate free-text fields in order and returns
// the first product-group code found, upper-cased. It returns the empty
// string when no field contains one; such records are excluded from
// group aggregation.
func GroupCode(fields ...string) string {
	for _, field := range fields {
		if m := groupCodePattern.FindString(field); m != "" {
			return strings.ToUpper(m)
		}
	}
	return ""
}
