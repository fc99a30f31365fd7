package export

import "strconv"

func itoa(n int) string {
	return strconv.Itoa(n)
}

func formatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
