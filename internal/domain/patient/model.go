package patient

import "time"

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// ValidGender reports whether g is one of the supported enumeration values.
func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Patient is a registered laboratory patient. JSON field names match the
// persisted bucket layout so export/import round-trips byte for byte.
type Patient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Gender    Gender    `json:"gender"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// Update carries the fields a caller may change. Nil means "leave as is";
// id and createdAt are never touched by an update.
type Update struct {
	Name    *string `json:"name"`
	Age     *int    `json:"age"`
	Gender  *Gender `json:"gender"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}
