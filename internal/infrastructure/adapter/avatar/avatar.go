// Package avatar builds the gender-based avatar URL assigned at signup.
package avatar

import (
	"net/url"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
)

const baseURL = "https://avatar.iran.liara.run/public"

// URL returns the avatar URL for a username and gender. Unknown genders
// fall back to the generic endpoint.
func URL(username, gender string) string {
	var path string
	switch gender {
	case entity.GenderMale:
		path = "/boy"
	case entity.GenderFemale:
		path = "/girl"
	}
	return baseURL + path + "?username=" + url.QueryEscape(username)
}
