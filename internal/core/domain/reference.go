package domain

// Mpa est un classement MPA (G, PG, PG-13...). Vocabulaire fixe, id -> label.
type Mpa struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// Genre est un genre de film. Même principe que Mpa.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}
