package models

import "fmt"

// maxUTCOffsetMillis is the widest real-world zone offset (UTC+14, Line Islands)
const maxUTCOffsetMillis = 14 * 60 * 60 * 1000

// UserProfile represents the subset of the fitness profile this system consumes.
// Only OffsetFromUTCMillis drives behavior; the display fields are kept for logs.
type UserProfile struct {
	EncodedID           string `json:"encodedId"`
	DisplayName         string `json:"displayName"`
	Timezone            string `json:"timezone"`
	OffsetFromUTCMillis int64  `json:"offsetFromUTCMillis"`
}

// ValidateUTCOffset checks that the profile's offset is a plausible zone offset
func (p *UserProfile) ValidateUTCOffset() error {
	if p.OffsetFromUTCMillis < -maxUTCOffsetMillis || p.OffsetFromUTCMillis > maxUTCOffsetMillis {
		return fmt.Errorf("UTC offset %d ms outside valid range (±14h)", p.OffsetFromUTCMillis)
	}
	return nil
}
