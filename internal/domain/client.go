package domain

// A service unit is the agency's billing granularity: 15 minutes of care.
const MinutesPerUnit = 15

// Client is a care recipient as supplied by the record store.
// Location is nil when geocoding failed; AuthorizedUnits is nil when no
// weekly service authorization is on file (absence of a target is not a
// coverage violation).
type Client struct {
	ID                     string
	Name                   string
	Location               *Coordinates
	AuthorizedUnits        *int
	RequiredCertifications []string
	Active                 bool
}
