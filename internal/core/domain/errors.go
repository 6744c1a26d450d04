package domain

import (
	"errors"
	"fmt"
)

// --- ERREURS DU DOMAINE ---
// Deux familles seulement : l'entrée du caller est invalide (ErrValidation),
// ou la ressource adressée n'existe pas (ErrNotFound).
// Les adapters primaires (REST) les traduisent en codes HTTP via errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

// Invalidf construit une erreur de validation avec un message lisible.
// Le message nomme toujours le champ ou l'identifiant fautif.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf construit une erreur "ressource absente".
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
