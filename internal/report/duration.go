package report

import "fmt"

// FormatDuration renders signed seconds as H:mm:ss with unbounded hours.
// Negative values get a leading "-" before the formatted absolute value.
func FormatDuration(seconds int64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%d:%02d:%02d", sign, seconds/3600, seconds%3600/60, seconds%60)
}
