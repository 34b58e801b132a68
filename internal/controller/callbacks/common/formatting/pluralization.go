package formatting

import "fmt"

// Plural picks the singular or plural form for count
func Plural(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// Count renders "1 appointment" / "3 appointments"
func Count(count int, singular, plural string) string {
	return fmt.Sprintf("%d %s", count, Plural(count, singular, plural))
}
