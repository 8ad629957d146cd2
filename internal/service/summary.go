package service

import (
	"strings"

	"pig-persona/internal/domain"
)

// UnableSummary es la salida fija cuando no sobrevivió ningún rasgo.
const UnableSummary = "Unable to analyze your drawing."

// ComposeSummary concatena los enunciados de los rasgos, en orden, en un
// párrafo legible. No normaliza gramática ni puntuación: se confía en que
// cada enunciado ya termina en punto.
func ComposeSummary(traits []domain.PersonalityTrait) string {
	switch len(traits) {
	case 0:
		return UnableSummary
	case 1:
		return "You have a " + traits[0].Statement
	case 2:
		return "You " + traits[0].Statement + " You also " + traits[1].Statement
	}

	head := make([]string, 0, len(traits)-1)
	for _, t := range traits[:len(traits)-1] {
		head = append(head, t.Statement)
	}
	return "You " + strings.Join(head, " You ") + " Finally, you " + traits[len(traits)-1].Statement
}
