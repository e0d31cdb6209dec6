package auth

// Claims representa la información extraída del access token.
type Claims struct {
	UserID   string
	Username string
	Roles    []string
}

// HasRole reporta si los claims incluyen el rol (con o sin prefijo ROLE_).
func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role || r == "ROLE_"+role {
			return true
		}
	}
	return false
}
