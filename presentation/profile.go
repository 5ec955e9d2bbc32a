package presentation

import (
	"regexp"
	"strings"

	"socio_verify_api/types"
)

var schemePrefix = regexp.MustCompile(`^(\w+:|)//`)

// Profile is the creator card shown next to a verified post.
type Profile struct {
	DisplayName    string `json:"displayName"`
	Handle         string `json:"handle,omitempty"`
	Username       string `json:"username"`
	Address        string `json:"address"`
	Bio            string `json:"bio,omitempty"`
	Website        string `json:"website,omitempty"`
	WebsiteLabel   string `json:"websiteLabel,omitempty"`
	ProfilePicture string `json:"profilePicture"`
	ProfileURL     string `json:"profileUrl"`
}

func NewProfile(creator types.Creator, profileBase string) Profile {
	profile := Profile{
		DisplayName:    creator.Username,
		Username:       creator.Username,
		Address:        creator.Address,
		Bio:            creator.Bio,
		Website:        creator.Website,
		ProfilePicture: creator.ProfilePicture,
		ProfileURL:     strings.TrimRight(profileBase, "/") + "/" + creator.Address,
	}
	if creator.Name != "" {
		profile.DisplayName = creator.Name
		profile.Handle = "@" + creator.Username
	}
	if creator.Website != "" {
		profile.WebsiteLabel = RemoveHttp(creator.Website)
	}
	if profile.ProfilePicture == "" {
		profile.ProfilePicture = types.DEFAULT_PROFILE_PICTURE
	}
	return profile
}

// RemoveHttp strips the scheme from a URL for display.
func RemoveHttp(url string) string {
	return schemePrefix.ReplaceAllString(url, "")
}

func PostURL(profileBase, cid string) string {
	return strings.TrimRight(profileBase, "/") + "/post/" + cid
}
