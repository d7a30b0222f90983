package testutil

import (
	"fmt"
	"time"

	"github.com/akyairhashvil/everyride/internal/models"
)

// BaseTime is a fixed instant tests build on: 2024-07-04 09:00 UTC.
var BaseTime = time.Date(2024, 7, 4, 9, 0, 0, 0, time.UTC)

// RideBuilder provides fluent API for creating test rides.
type RideBuilder struct {
	ride models.Ride
}

func NewRide(id string) *RideBuilder {
	return &RideBuilder{
		ride: models.Ride{
			ID:       id,
			ResortID: "wdw",
			ParkID:   "mk",
			Name:     "Ride " + id,
			Active:   true,
		},
	}
}

func (b *RideBuilder) InPark(resortID, parkID string) *RideBuilder {
	b.ride.ResortID = resortID
	b.ride.ParkID = parkID
	return b
}

func (b *RideBuilder) WithName(name string) *RideBuilder {
	b.ride.Name = name
	return b
}

func (b *RideBuilder) WithSortKey(key string) *RideBuilder {
	b.ride.SortKey = key
	return b
}

func (b *RideBuilder) WithLightningLane() *RideBuilder {
	b.ride.HasLightningLane = true
	return b
}

func (b *RideBuilder) WithSingleRider() *RideBuilder {
	b.ride.HasSingleRider = true
	return b
}

func (b *RideBuilder) Inactive() *RideBuilder {
	b.ride.Active = false
	return b
}

func (b *RideBuilder) Build() models.Ride {
	return b.ride
}

// MagicKingdom returns n active rides mk-1..mk-n, all offering LL and SR.
func MagicKingdom(n int) []models.Ride {
	rides := make([]models.Ride, 0, n)
	for i := 1; i <= n; i++ {
		rides = append(rides, NewRide(fmt.Sprintf("mk-%d", i)).
			WithName(fmt.Sprintf("Ride %02d", i)).
			WithLightningLane().
			WithSingleRider().
			Build())
	}
	return rides
}

// ChallengeBuilder provides fluent API for creating test challenges.
type ChallengeBuilder struct {
	ch models.Challenge
}

func NewChallenge(id string) *ChallengeBuilder {
	return &ChallengeBuilder{
		ch: models.Challenge{
			ID:        id,
			ResortID:  "wdw",
			DayKey:    BaseTime.Format("2006-01-02"),
			StartedAt: BaseTime,
			Events:    []models.RideEvent{},
		},
	}
}

func (b *ChallengeBuilder) WithResort(resortID string) *ChallengeBuilder {
	b.ch.ResortID = resortID
	return b
}

func (b *ChallengeBuilder) WithDayKey(key string) *ChallengeBuilder {
	b.ch.DayKey = key
	return b
}

func (b *ChallengeBuilder) StartedAt(t time.Time) *ChallengeBuilder {
	b.ch.StartedAt = t
	return b
}

func (b *ChallengeBuilder) EndedAt(t time.Time) *ChallengeBuilder {
	b.ch.EndedAt = &t
	return b
}

func (b *ChallengeBuilder) Saved(at time.Time) *ChallengeBuilder {
	b.ch.Saved = true
	b.ch.SavedAt = &at
	return b
}

func (b *ChallengeBuilder) WithSettings(tags, link string) *ChallengeBuilder {
	b.ch.Settings = models.Settings{TagsText: tags, FundraisingLink: link}
	return b
}

func (b *ChallengeBuilder) Excluding(ids ...string) *ChallengeBuilder {
	b.ch.ExcludedRideIDs = append(b.ch.ExcludedRideIDs, ids...)
	return b
}

// WithEvent appends an event timestamped one minute after the previous one.
func (b *ChallengeBuilder) WithEvent(rideID string, q models.QueueType) *ChallengeBuilder {
	n := len(b.ch.Events)
	b.ch.Events = append(b.ch.Events, models.RideEvent{
		ID:        fmt.Sprintf("%s-e%d", b.ch.ID, n+1),
		RideID:    rideID,
		ParkID:    "mk",
		QueueType: q,
		Timestamp: b.ch.StartedAt.Add(time.Duration(n+1) * time.Minute),
		RideName:  "Ride " + rideID,
	})
	return b
}

func (b *ChallengeBuilder) Build() models.Challenge {
	return b.ch.Clone()
}
