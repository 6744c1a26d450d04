package domain

import "time"

// MinReleaseDate : première projection publique des frères Lumière.
// Aucun film ne peut être sorti avant.
var MinReleaseDate = NewDate(1895, time.December, 28)

// MaxDescriptionLen borne la longueur du synopsis (en runes, pas en octets).
const MaxDescriptionLen = 200

// --- ENTITÉ ---

// Film est l'enregistrement canonique d'un film.
// L'ID est attribué par le store (monotone, jamais réutilisé) ; 0 = pas encore stocké.
// Les likes ne vivent PAS ici : le graphe (film -> users) est porté par le
// repository, pour éviter toute propriété cyclique entre entités.
type Film struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	ReleaseDate Date    `json:"releaseDate"`
	Duration    int     `json:"duration"` // minutes
	Mpa         *Mpa    `json:"mpa,omitempty"`
	Genres      []Genre `json:"genres,omitempty"`
}

// Validate vérifie les invariants de champ, dans l'ordre, premier échec gagnant :
// nom non vide, description <= 200 caractères, date de sortie >= 1895-12-28,
// durée strictement positive. Pur : aucune mutation.
// La cohérence des références Mpa/Genres avec le vocabulaire est vérifiée
// plus haut (service), car elle demande un lookup externe.
func (f *Film) Validate() error {
	if isBlank(f.Name) {
		return Invalidf("film name must not be empty")
	}
	if len([]rune(f.Description)) > MaxDescriptionLen {
		return Invalidf("film description exceeds %d characters", MaxDescriptionLen)
	}
	if f.ReleaseDate.IsZero() || f.ReleaseDate.Before(MinReleaseDate.Time) {
		return Invalidf("film release date must not be before %s", MinReleaseDate)
	}
	if f.Duration <= 0 {
		return Invalidf("film duration must be positive")
	}
	return nil
}

// Clone retourne une copie indépendante (slices et pointeurs dupliqués).
// Le store clone à chaque franchissement de frontière : muter l'original du
// caller après un Add ne doit jamais toucher l'enregistrement stocké.
func (f *Film) Clone() *Film {
	c := *f
	if f.Mpa != nil {
		mpa := *f.Mpa
		c.Mpa = &mpa
	}
	if f.Genres != nil {
		c.Genres = make([]Genre, len(f.Genres))
		copy(c.Genres, f.Genres)
	}
	return &c
}
