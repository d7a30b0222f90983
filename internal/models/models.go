package models

import "time"

// QueueType is the line category used for a ride completion.
type QueueType string

const (
	QueueStandby       QueueType = "standby"
	QueueLightningLane QueueType = "ll"
	QueueSingleRider   QueueType = "sr"
)

// Valid reports whether q is one of the known queue codes.
func (q QueueType) Valid() bool {
	switch q {
	case QueueStandby, QueueLightningLane, QueueSingleRider:
		return true
	}
	return false
}

// Label is the long display name ("Lightning Lane").
func (q QueueType) Label() string {
	switch q {
	case QueueLightningLane:
		return "Lightning Lane"
	case QueueSingleRider:
		return "Single Rider"
	default:
		return "Standby Line"
	}
}

// Abbrev is the short table form. Standby is blank since it is the default.
func (q QueueType) Abbrev() string {
	switch q {
	case QueueLightningLane:
		return "LL"
	case QueueSingleRider:
		return "SR"
	default:
		return ""
	}
}

// Ride is one attraction from the static catalog.
type Ride struct {
	ID               string
	ResortID         string
	ParkID           string
	Name             string
	MediumName       string
	ShortName        string
	SortKey          string
	HasLightningLane bool
	HasSingleRider   bool
	Active           bool
}

// Supports reports whether the ride offers the given queue type.
func (r Ride) Supports(q QueueType) bool {
	switch q {
	case QueueStandby:
		return true
	case QueueLightningLane:
		return r.HasLightningLane
	case QueueSingleRider:
		return r.HasSingleRider
	}
	return false
}

// Park is a park inside a resort.
type Park struct {
	ID   string
	Name string
}

// Resort groups parks and the default post tags for a challenge there.
type Resort struct {
	ID          string
	Name        string
	Parks       []Park
	DefaultTags string
}

// RideEvent records one ride completion. ParkID and RideName are snapshots
// taken at logging time so old runs still render after catalog edits.
type RideEvent struct {
	ID        string    `json:"id"`
	RideID    string    `json:"rideId"`
	ParkID    string    `json:"parkId"`
	QueueType QueueType `json:"queueType"`
	Timestamp time.Time `json:"timestamp"`
	RideName  string    `json:"rideName"`
}

// Settings are the per-run post settings.
type Settings struct {
	TagsText        string `json:"tagsText"`
	FundraisingLink string `json:"fundraisingLink"`
}

// Challenge is one run: the active one or an archived history entry.
// Events order is authoritative; ride numbers derive from it.
type Challenge struct {
	ID              string      `json:"id"`
	ResortID        string      `json:"resortId"`
	DayKey          string      `json:"dayKey"`
	StartedAt       time.Time   `json:"startedAt"`
	EndedAt         *time.Time  `json:"endedAt,omitempty"`
	Settings        Settings    `json:"settings"`
	ExcludedRideIDs []string    `json:"excludedRideIds"`
	Events          []RideEvent `json:"events"`
	Saved           bool        `json:"saved,omitempty"`
	SavedAt         *time.Time  `json:"savedAt,omitempty"`
}

// Clone returns a deep copy that shares no slices or pointers with c.
func (c Challenge) Clone() Challenge {
	out := c
	if c.EndedAt != nil {
		t := *c.EndedAt
		out.EndedAt = &t
	}
	if c.SavedAt != nil {
		t := *c.SavedAt
		out.SavedAt = &t
	}
	if c.ExcludedRideIDs != nil {
		out.ExcludedRideIDs = append([]string(nil), c.ExcludedRideIDs...)
	}
	if c.Events != nil {
		out.Events = append([]RideEvent(nil), c.Events...)
	}
	return out
}

// LastActivity is EndedAt, else the last event time, else StartedAt.
func (c Challenge) LastActivity() time.Time {
	if c.EndedAt != nil {
		return *c.EndedAt
	}
	if n := len(c.Events); n > 0 {
		return c.Events[n-1].Timestamp
	}
	return c.StartedAt
}
