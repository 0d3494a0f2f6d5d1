package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
)

// DecodeJSON décode le corps JSON d'une requête dans dst
func DecodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// Les IDs utilisateurs viennent du service d'authentification : UUID ou
// identifiant court alphanumérique. Tout le reste est rejeté en amont.
var userIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ValidateUserID vérifie le format d'un identifiant utilisateur (fail fast)
func ValidateUserID(userID string) error {
	if !userIDPattern.MatchString(userID) {
		return fmt.Errorf("invalid user id format: %q", userID)
	}
	return nil
}
