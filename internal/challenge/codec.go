package challenge

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/akyairhashvil/everyride/internal/config"
	"github.com/akyairhashvil/everyride/internal/models"
)

// wireChallenge accepts both the canonical record and the older shapes that
// kept settings at the top level or exclusions inside settings.
type wireChallenge struct {
	ID              string       `json:"id"`
	ResortID        string       `json:"resortId"`
	DayKey          string       `json:"dayKey"`
	StartedAt       *time.Time   `json:"startedAt"`
	EndedAt         *time.Time   `json:"endedAt"`
	Settings        wireSettings `json:"settings"`
	ExcludedRideIDs []string     `json:"excludedRideIds"`
	Events          []wireEvent  `json:"events"`
	Saved           bool         `json:"saved"`
	SavedAt         *time.Time   `json:"savedAt"`

	LegacyTagsText        *string `json:"tagsText"`
	LegacyFundraisingLink *string `json:"fundraisingLink"`
}

type wireSettings struct {
	TagsText        *string  `json:"tagsText"`
	FundraisingLink *string  `json:"fundraisingLink"`
	ExcludedRideIDs []string `json:"excludedRideIds"`
}

type wireEvent struct {
	ID        string           `json:"id"`
	RideID    string           `json:"rideId"`
	ParkID    string           `json:"parkId"`
	QueueType models.QueueType `json:"queueType"`
	Timestamp *time.Time       `json:"timestamp"`
	RideName  string           `json:"rideName"`

	LegacyPark    string           `json:"park"`
	LegacyMode    models.QueueType `json:"mode"`
	LegacyTimeISO *time.Time       `json:"timeISO"`
}

// EncodeChallenge serializes a record in its canonical form.
func EncodeChallenge(c models.Challenge) ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode challenge %s: %w", c.ID, err)
	}
	return data, nil
}

// DecodeChallenge parses a persisted record and migrates older shapes.
func DecodeChallenge(data []byte) (models.Challenge, error) {
	var w wireChallenge
	if err := json.Unmarshal(data, &w); err != nil {
		return models.Challenge{}, fmt.Errorf("decode challenge: %w", err)
	}
	return w.migrate(), nil
}

// EncodeHistory serializes the history collection.
func EncodeHistory(hist []models.Challenge) ([]byte, error) {
	if hist == nil {
		hist = []models.Challenge{}
	}
	data, err := json.Marshal(hist)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	return data, nil
}

// DecodeHistory parses the history collection, migrating every entry.
func DecodeHistory(data []byte) ([]models.Challenge, error) {
	var ws []wireChallenge
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	out := make([]models.Challenge, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.migrate())
	}
	return out, nil
}

// EncodeRideIDs serializes an exclusion set as a sorted JSON array.
func EncodeRideIDs(set RideSet) ([]byte, error) {
	return json.Marshal(set.Slice())
}

// DecodeRideIDs parses a JSON array of ride ids. Anything else yields an
// empty set.
func DecodeRideIDs(data []byte) RideSet {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return RideSet{}
	}
	return NewRideSet(ids...)
}

func (w wireChallenge) migrate() models.Challenge {
	c := models.Challenge{
		ID:       w.ID,
		ResortID: w.ResortID,
		DayKey:   w.DayKey,
		EndedAt:  w.EndedAt,
		Saved:    w.Saved,
		SavedAt:  w.SavedAt,
	}
	if c.ResortID == "" {
		c.ResortID = config.DefaultResortID
	}
	if w.StartedAt != nil {
		c.StartedAt = *w.StartedAt
	}

	// Top-level settings were written by older builds and take precedence.
	c.Settings.TagsText = firstString(w.LegacyTagsText, w.Settings.TagsText)
	c.Settings.FundraisingLink = firstString(w.LegacyFundraisingLink, w.Settings.FundraisingLink)

	switch {
	case w.ExcludedRideIDs != nil:
		c.ExcludedRideIDs = w.ExcludedRideIDs
	case w.Settings.ExcludedRideIDs != nil:
		c.ExcludedRideIDs = w.Settings.ExcludedRideIDs
	}

	if w.Events != nil {
		c.Events = make([]models.RideEvent, 0, len(w.Events))
		for _, we := range w.Events {
			c.Events = append(c.Events, we.migrate())
		}
	}
	return c
}

func (we wireEvent) migrate() models.RideEvent {
	ev := models.RideEvent{
		ID:        we.ID,
		RideID:    we.RideID,
		ParkID:    we.ParkID,
		QueueType: we.QueueType,
		RideName:  we.RideName,
	}
	if ev.ParkID == "" {
		ev.ParkID = we.LegacyPark
	}
	if ev.QueueType == "" {
		ev.QueueType = we.LegacyMode
	}
	if !ev.QueueType.Valid() {
		ev.QueueType = models.QueueStandby
	}
	switch {
	case we.Timestamp != nil:
		ev.Timestamp = *we.Timestamp
	case we.LegacyTimeISO != nil:
		ev.Timestamp = *we.LegacyTimeISO
	}
	return ev
}

func firstString(vals ...*string) string {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return ""
}
