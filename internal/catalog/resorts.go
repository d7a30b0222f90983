package catalog

import "github.com/akyairhashvil/everyride/internal/models"

const defaultTagsTail = "\n\nHelp me support @GKTWVillage by donating at the link below"

var resorts = []models.Resort{
	{
		ID:   "wdw",
		Name: "Walt Disney World",
		Parks: []models.Park{
			{ID: "mk", Name: "Magic Kingdom"},
			{ID: "ep", Name: "EPCOT"},
			{ID: "hs", Name: "Hollywood Studios"},
			{ID: "ak", Name: "Animal Kingdom"},
		},
		DefaultTags: "#EveryRideWDW @RideEvery" + defaultTagsTail,
	},
	{
		ID:   "dlr",
		Name: "Disneyland Resort",
		Parks: []models.Park{
			{ID: "dl", Name: "Disneyland Park"},
			{ID: "dca", Name: "California Adventure"},
		},
		DefaultTags: "#EveryRideDLR @RideEvery" + defaultTagsTail,
	},
}

// Resorts lists the supported resorts in display order.
func Resorts() []models.Resort {
	out := make([]models.Resort, len(resorts))
	copy(out, resorts)
	return out
}

// Resort returns the resort with the given id, falling back to Walt Disney World.
func Resort(id string) models.Resort {
	for _, r := range resorts {
		if r.ID == id {
			return r
		}
	}
	return resorts[0]
}

// KnownResort reports whether id names a supported resort.
func KnownResort(id string) bool {
	for _, r := range resorts {
		if r.ID == id {
			return true
		}
	}
	return false
}

// ParkName returns the display name of a park, or the id when unknown.
func ParkName(resortID, parkID string) string {
	for _, p := range Resort(resortID).Parks {
		if p.ID == parkID {
			return p.Name
		}
	}
	return parkID
}
