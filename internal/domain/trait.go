package domain

// Categorías cerradas de rasgos de personalidad, en el orden fijo en que se
// evalúan las reglas.
const (
	TraitCategoryPlacement   = "placement"
	TraitCategoryOrientation = "orientation"
	TraitCategoryDetails     = "details"
	TraitCategoryLegs        = "legs"
	TraitCategoryEars        = "ears"
	TraitCategoryTail        = "tail"
)

// Evidence respalda un veredicto: Key es el token canónico categoria=Valor
// (ej. "legs=4") y Value la medición cruda que lo produjo.
type Evidence struct {
	Key        string   `json:"key"`
	Value      any      `json:"value"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// PersonalityTrait es una señal categórica inferida de una Detection.
// Inmutable: cada análisis produce una lista fresca, nunca se actualiza.
type PersonalityTrait struct {
	Category  string   `json:"category"`
	Statement string   `json:"statement"`
	Evidence  Evidence `json:"evidence"`
}
