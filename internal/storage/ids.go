package storage

import "github.com/segmentio/ksuid"

// NextReference returns a new sortable public identifier for reports. Row ids
// stay internal; references are what users quote when following up.
func NextReference() string {
	return ksuid.New().String()
}
