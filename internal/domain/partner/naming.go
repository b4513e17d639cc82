package partner

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NamingBy selects how new customers get their document name
type NamingBy string

const (
	NamingByCustomerName NamingBy = "customer_name"
	NamingByNamingSeries NamingBy = "naming_series"
)

// IsValid reports whether n is a known naming mode
func (n NamingBy) IsValid() bool {
	return n == NamingByCustomerName || n == NamingByNamingSeries
}

// NormalizeName NFC-normalizes and trims a human-entered name so that visually
// identical names compare equal.
func NormalizeName(name string) string {
	return strings.TrimSpace(norm.NFC.String(name))
}

// DuplicateNamePattern is the prefix shared by every disambiguated copy of base
func DuplicateNamePattern(base string) string {
	return base + " - "
}

// NextDuplicateName returns "<base> - N" where N is one more than the largest
// numeric suffix among existing names starting with "<base> - ". A trailing
// token that does not start with digits counts as zero.
func NextDuplicateName(base string, existing []string) string {
	prefix := DuplicateNamePattern(base)
	highest := 0
	for _, name := range existing {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		last := name[strings.LastIndex(name, " ")+1:]
		if n := leadingInt(last); n > highest {
			highest = n
		}
	}
	return prefix + strconv.Itoa(highest+1)
}

// AppendNumberIfTaken returns base when it is free, otherwise "<base>-N" with N
// one more than the largest existing "<base>-<digits>".
func AppendNumberIfTaken(base string, existing []string) string {
	taken := false
	highest := 0
	prefix := base + "-"
	for _, name := range existing {
		if name == base {
			taken = true
			continue
		}
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		suffix := name[len(prefix):]
		if suffix == "" || !isDigits(suffix) {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err == nil && n > highest {
			highest = n
		}
	}
	if !taken {
		return base
	}
	return prefix + strconv.Itoa(highest+1)
}

func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
