package challenge

import (
	"testing"
	"time"

	"github.com/akyairhashvil/everyride/internal/models"
)

func TestComposePost(t *testing.T) {
	tests := []struct {
		name     string
		main     string
		settings models.Settings
		want     string
	}{
		{"main only", "  Ride 1. Jungle Cruise ", models.Settings{}, "Ride 1. Jungle Cruise"},
		{"tags and link", "Ride 1", models.Settings{TagsText: " #EveryRideWDW ", FundraisingLink: "https://example.org/give"},
			"Ride 1\n\n#EveryRideWDW\n\nhttps://example.org/give"},
		{"blank tags skipped", "Ride 1", models.Settings{TagsText: "   ", FundraisingLink: "link"}, "Ride 1\n\nlink"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComposePost(tt.main, tt.settings); got != tt.want {
				t.Fatalf("ComposePost = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRideLoggedText(t *testing.T) {
	at := time.Date(2024, 7, 4, 15, 4, 0, 0, time.UTC)
	tests := []struct {
		q       models.QueueType
		ordinal int
		want    string
	}{
		{models.QueueStandby, 0, "Ride 7. Haunted Mansion at 3:04 PM"},
		{models.QueueLightningLane, 2, "Ride 7. Haunted Mansion using Lightning Lane #2 at 3:04 PM"},
		{models.QueueSingleRider, 0, "Ride 7. Haunted Mansion using Single Rider at 3:04 PM"},
	}
	for _, tt := range tests {
		if got := RideLoggedText(7, "Haunted Mansion", tt.q, tt.ordinal, at); got != tt.want {
			t.Fatalf("RideLoggedText(%s) = %q, want %q", tt.q, got, tt.want)
		}
	}
}

func TestCorrectionAndParkText(t *testing.T) {
	if got := CorrectionText(3, "Space Mountain", models.QueueStandby); got != "Correction: Ride 3. Space Mountain was via Standby Line." {
		t.Fatalf("unexpected correction %q", got)
	}
	if got := ParkCompleteText("Magic Kingdom"); got != "✅ Magic Kingdom complete!" {
		t.Fatalf("unexpected park text %q", got)
	}
}
