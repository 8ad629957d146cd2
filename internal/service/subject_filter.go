package service

import "strings"

// Listas de palabras clave para el filtro de sujeto. Primario: el sujeto y
// sus sinónimos; secundario: anatomía que sólo aparece en dibujos del sujeto.
var (
	subjectKeywords = []string{"pig", "piglet", "hog", "boar", "swine", "sow"}
	anatomyKeywords = []string{"snout", "trotter", "oink", "curly tail"}
)

// IsExpectedSubject decide, a partir de la descripción libre del analizador,
// si la imagen plausiblemente muestra un cerdo. Es una heurística barata a
// propósito: corta la inferencia sobre entradas obviamente equivocadas, no
// garantiza que el sujeto sea correcto. Descripción vacía devuelve false.
func IsExpectedSubject(description string) bool {
	d := strings.ToLower(strings.TrimSpace(description))
	if d == "" {
		return false
	}
	return containsAny(d, subjectKeywords) || containsAny(d, anatomyKeywords)
}

func containsAny(s string, list []string) bool {
	for _, x := range list {
		if strings.Contains(s, x) {
			return true
		}
	}
	return false
}
