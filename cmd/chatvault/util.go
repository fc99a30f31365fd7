package main

import "time"

// nowUTC stamps export_date in export output; a thin wrapper so every
// command gets the same clock source.
func nowUTC() time.Time {
	return time.Now().UTC()
}
