package domain

import "strings"

// AnonymousName the fallback display name when nothing else resolves
const AnonymousName = "Anonymous"

// Identity the name/id pair a message is attributed to. ProfileID is nil for
// ephemeral senders.
type Identity struct {
	Name      string
	ProfileID *string
}

// ResolveIdentity pick the identity a send is attributed to, in priority
// order: signed-in profile, locally entered display name, "Anonymous".
func ResolveIdentity(profileID *string, profileName, ephemeralName string) Identity {
	if profileID != nil && strings.TrimSpace(profileName) != "" {
		return Identity{Name: profileName, ProfileID: profileID}
	}
	if name := strings.TrimSpace(ephemeralName); name != "" {
		return Identity{Name: name}
	}
	return Identity{Name: AnonymousName}
}
