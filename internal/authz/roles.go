package authz

const (
	RoleAdmin = "admin"
)

// HasAnyRole reports whether roles contains at least one of allowed.
func HasAnyRole(roles []string, allowed ...string) bool {
	for _, r := range roles {
		for _, a := range allowed {
			if r == a {
				return true
			}
		}
	}
	return false
}
