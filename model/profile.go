package model

// Tee-shirt sizes accepted on profile save.
const TeeShirtNotSpecified = "NOT_SPECIFIED"

var TeeShirtSizes = []string{
	TeeShirtNotSpecified,
	"XS_M", "XS_W",
	"S_M", "S_W",
	"M_M", "M_W",
	"L_M", "L_W",
	"XL_M", "XL_W",
	"XXL_M", "XXL_W",
	"XXXL_M", "XXXL_W",
}

// Profile is keyed by the user id (the login), not by an ObjectID, since it
// is created lazily on first access for an authenticated user.
type Profile struct {
	Id                     string   `json:"_id" bson:"_id"`
	DisplayName            string   `json:"display_name" bson:"display_name"`
	MainEmail              string   `json:"main_email" bson:"main_email"`
	TeeShirtSize           string   `json:"tee_shirt_size" bson:"tee_shirt_size"`
	ConferenceKeysToAttend []string `json:"conference_keys_to_attend" bson:"conference_keys_to_attend"`
}

func (p Profile) IsAttending(confKey string) bool {
	for _, key := range p.ConferenceKeysToAttend {
		if key == confKey {
			return true
		}
	}
	return false
}

func IsValidTeeShirtSize(size string) bool {
	for _, s := range TeeShirtSizes {
		if s == size {
			return true
		}
	}
	return false
}
