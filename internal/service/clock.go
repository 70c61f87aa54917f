package service

import "time"

// nowUTC returns the current time in UTC. Centralized so timestamps are
// consistent across services.
func nowUTC() time.Time {
	return time.Now().UTC()
}
