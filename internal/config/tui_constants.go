package config

// Layout constants.
const (
	// MinRideNameWidth is the narrowest ride name column before truncation
	// stops shrinking it.
	MinRideNameWidth = 12

	// DefaultWidth is used until the first WindowSizeMsg arrives.
	DefaultWidth = 80

	// MaxVisibleRides limits rows shown on a park page before scrolling.
	MaxVisibleRides = 18

	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "…"
)

// Input constraints.
const (
	MaxTagsLength = 280
	MaxLinkLength = 200
)
