// Package clock converts second counts to and from the HH:MM:SS form shown
// throughout the UI.
package clock

import "fmt"

// Format renders seconds as HH:MM:SS. Negative values get a leading "-".
// Hours are padded to two digits and grow past that when needed.
func Format(seconds int) string {
	if seconds < 0 {
		return "-" + Format(-seconds)
	}
	h, m, s := Split(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Split breaks a non-negative second count into hours, minutes and seconds.
func Split(t int) (h, m, s int) {
	return t / 3600, (t % 3600) / 60, t % 60
}

func Seconds(h, m, s int) int {
	return h*3600 + m*60 + s
}
