package tz

import "time"

// Moscow is the Europe/Moscow location (MSK, no DST).
var Moscow *time.Location

func init() {
	var err error
	Moscow, err = time.LoadLocation("Europe/Moscow")
	if err != nil {
		// Minimal images may ship without tzdata; MSK is a fixed UTC+3 offset.
		Moscow = time.FixedZone("MSK", 3*60*60)
	}
}
