package inventory

import "github.com/google/uuid"

// canonicalID devuelve el UUID en forma canónica (minúsculas); ok=false si no es un UUID.
func canonicalID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return id, false
	}
	return u.String(), true
}
