// Package catalog holds the static ride reference data. A Catalog is loaded
// once and never mutated afterwards.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/akyairhashvil/everyride/internal/config"
	"github.com/akyairhashvil/everyride/internal/models"
)

//go:embed rides.json
var defaultRides []byte

// Name variants accepted by DisplayName.
const (
	NameFull   = "full"
	NameMedium = "medium"
	NameShort  = "short"
)

// rideRecord is the on-disk shape of one catalog entry.
type rideRecord struct {
	ID         string `json:"id"`
	Resort     string `json:"resort"`
	Park       string `json:"park"`
	Name       string `json:"name"`
	MediumName string `json:"mediumName"`
	ShortName  string `json:"shortName"`
	SortKey    string `json:"sortKey"`
	LL         bool   `json:"ll"`
	SR         bool   `json:"sr"`
	Active     *bool  `json:"active"`
}

// Catalog is the immutable ride set. It is not safe for concurrent use
// because the collator keeps internal buffers.
type Catalog struct {
	all      []models.Ride
	byID     map[string]models.Ride
	collator *collate.Collator
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultRides))
}

// LoadFile reads a catalog from a JSON file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a JSON array of rides.
func Load(r io.Reader) (*Catalog, error) {
	var records []rideRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	rides := make([]models.Ride, 0, len(records))
	for i, rec := range records {
		if rec.ID == "" {
			return nil, fmt.Errorf("decode catalog: entry %d has no id", i)
		}
		rides = append(rides, rec.toRide())
	}
	return New(rides)
}

// New builds a catalog from already-decoded rides.
func New(rides []models.Ride) (*Catalog, error) {
	c := &Catalog{
		all:      make([]models.Ride, 0, len(rides)),
		byID:     make(map[string]models.Ride, len(rides)),
		collator: collate.New(language.English, collate.IgnoreCase),
	}
	for _, r := range rides {
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate ride id %q", r.ID)
		}
		c.byID[r.ID] = r
		c.all = append(c.all, r)
	}
	return c, nil
}

func (rec rideRecord) toRide() models.Ride {
	resort := rec.Resort
	if resort == "" {
		resort = config.DefaultResortID
	}
	active := true
	if rec.Active != nil {
		active = *rec.Active
	}
	return models.Ride{
		ID:               rec.ID,
		ResortID:         resort,
		ParkID:           rec.Park,
		Name:             rec.Name,
		MediumName:       rec.MediumName,
		ShortName:        rec.ShortName,
		SortKey:          rec.SortKey,
		HasLightningLane: rec.LL,
		HasSingleRider:   rec.SR,
		Active:           active,
	}
}

// Len is the number of rides including inactive ones.
func (c *Catalog) Len() int { return len(c.all) }

// RideByID resolves against every ride, any resort, active or not.
func (c *Catalog) RideByID(id string) (models.Ride, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// RidesByResort returns the active rides of a resort in display order.
func (c *Catalog) RidesByResort(resortID string) []models.Ride {
	return c.filter(func(r models.Ride) bool {
		return r.Active && r.ResortID == resortID
	})
}

// RidesByPark returns the active rides of one park in display order.
func (c *Catalog) RidesByPark(resortID, parkID string) []models.Ride {
	return c.filter(func(r models.Ride) bool {
		return r.Active && r.ResortID == resortID && r.ParkID == parkID
	})
}

func (c *Catalog) filter(keep func(models.Ride) bool) []models.Ride {
	var out []models.Ride
	for _, r := range c.all {
		if keep(r) {
			out = append(out, r)
		}
	}
	c.Sort(out)
	return out
}

// Compare orders rides by sort key (name when unset), ignoring case, with
// the id as a final tie-break.
func (c *Catalog) Compare(a, b models.Ride) int {
	if n := c.collator.CompareString(sortKey(a), sortKey(b)); n != 0 {
		return n
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}

// Sort orders rides in place using Compare.
func (c *Catalog) Sort(rides []models.Ride) {
	sort.SliceStable(rides, func(i, j int) bool {
		return c.Compare(rides[i], rides[j]) < 0
	})
}

func sortKey(r models.Ride) string {
	if r.SortKey != "" {
		return r.SortKey
	}
	return r.Name
}

// DisplayName picks a name variant, falling back to the full name.
func DisplayName(r models.Ride, variant string) string {
	switch variant {
	case NameMedium:
		if r.MediumName != "" {
			return r.MediumName
		}
	case NameShort:
		if r.ShortName != "" {
			return r.ShortName
		}
		if r.MediumName != "" {
			return r.MediumName
		}
	}
	return r.Name
}
