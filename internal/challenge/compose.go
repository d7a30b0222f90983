package challenge

import (
	"fmt"
	"strings"
	"time"

	"github.com/akyairhashvil/everyride/internal/models"
)

// ComposePost joins the main text with the run's tags and fundraising link,
// separated by blank lines. Empty parts are skipped.
func ComposePost(main string, s models.Settings) string {
	parts := []string{strings.TrimSpace(main)}
	if tags := strings.TrimSpace(s.TagsText); tags != "" {
		parts = append(parts, tags)
	}
	if link := strings.TrimSpace(s.FundraisingLink); link != "" {
		parts = append(parts, link)
	}
	return strings.Join(parts, "\n\n")
}

// RideLoggedText is the main text for a freshly logged ride. Standby is
// implied and not mentioned.
func RideLoggedText(number int, rideName string, q models.QueueType, llOrdinal int, at time.Time) string {
	var mid string
	switch q {
	case models.QueueLightningLane:
		mid = " using Lightning Lane"
		if llOrdinal > 0 {
			mid += fmt.Sprintf(" #%d", llOrdinal)
		}
	case models.QueueSingleRider:
		mid = " using Single Rider"
	}
	return fmt.Sprintf("Ride %d. %s%s at %s", number, rideName, mid, FormatClock(at))
}

// CorrectionText announces a queue type edit for an already posted ride.
func CorrectionText(number int, rideName string, q models.QueueType) string {
	return fmt.Sprintf("Correction: Ride %d. %s was via %s.", number, rideName, q.Label())
}

// ParkCompleteText is the main text for a park completion post.
func ParkCompleteText(parkName string) string {
	return fmt.Sprintf("✅ %s complete!", parkName)
}

// FormatClock renders a 12-hour clock time such as "3:04 PM".
func FormatClock(t time.Time) string {
	return t.Format("3:04 PM")
}
