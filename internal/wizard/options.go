package wizard

// DefaultPhoneCountryCode pre-fills the dialling code select.
const DefaultPhoneCountryCode = "+44"

// Intents offered on the first step. Free text is also accepted.
var Intents = []string{
	"Honeymoon",
	"Anniversary",
	"Family Holiday",
	"Solo Travel",
	"Friends Getaway",
	"Wellness Retreat",
	"Diving Trip",
}

// ExperienceTags offered on the experiences step.
var ExperienceTags = []string{
	"Snorkelling",
	"Diving",
	"Spa",
	"Food",
	"Surfing",
	"Sandbank Picnic",
	"Dolphin Cruise",
	"Fishing",
	"Yoga",
	"Kids Club",
}

// Preference is a binary island preference. Exactly one of Options is chosen.
type Preference struct {
	Key     string    `json:"key"`
	Label   string    `json:"label"`
	Options [2]string `json:"options"`
}

// Preferences asked on the preferences step, in display order.
var Preferences = []Preference{
	{Key: "islandSize", Label: "Island size", Options: [2]string{"Small Island", "Large Island"}},
	{Key: "transfer", Label: "Arrival", Options: [2]string{"Speedboat", "Seaplane"}},
	{Key: "villa", Label: "Villa", Options: [2]string{"Beach Villa", "Water Villa"}},
}

// MealPlans offered on the contact step.
var MealPlans = []string{"Bed & Breakfast", "Half Board", "Full Board", "All Inclusive", "Not sure yet"}

// BudgetTypes qualify the free-form budget figure.
var BudgetTypes = []string{"per_person", "total"}

func isTag(tag string) bool {
	for _, t := range ExperienceTags {
		if t == tag {
			return true
		}
	}
	return false
}

func validPreference(key, value string) bool {
	for _, p := range Preferences {
		if p.Key == key {
			return value == p.Options[0] || value == p.Options[1]
		}
	}
	return false
}
