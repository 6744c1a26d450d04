package domain

import (
	"strings"
	"time"
)

// --- ENTITÉ ---

// User est l'enregistrement canonique d'un utilisateur.
// Comme pour Film, l'ID est attribué par le store et le graphe d'amitié
// (adjacence user -> users) vit dans le repository, pas dans l'entité.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name,omitempty"`
	Birthday Date   `json:"birthday"`
}

// Validate vérifie les invariants de champ, dans l'ordre :
// email non vide avec '@', login non vide sans espace, date de naissance
// présente et pas dans le futur. Pur : le défaut du nom est appliqué
// séparément par ApplyDefaults, pour que "valider ne mute jamais" tienne.
func (u *User) Validate() error {
	if isBlank(u.Email) || !strings.Contains(u.Email, "@") {
		return Invalidf("user email must contain '@'")
	}
	if isBlank(u.Login) || strings.ContainsAny(u.Login, " \t\n\r") {
		return Invalidf("user login must not be empty or contain whitespace")
	}
	if u.Birthday.IsZero() || u.Birthday.After(time.Now()) {
		return Invalidf("user birthday must not be in the future")
	}
	return nil
}

// ApplyDefaults remplit les champs optionnels : un nom d'affichage vide
// devient le login. Le défaut est écrit dans l'enregistrement (et donc
// persisté), pas seulement retourné.
func (u *User) ApplyDefaults() {
	if isBlank(u.Name) {
		u.Name = u.Login
	}
}

// Clone retourne une copie indépendante.
func (u *User) Clone() *User {
	c := *u
	return &c
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
