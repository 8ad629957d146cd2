package service

import "pig-persona/internal/domain"

// Veredictos internos que no son valores de campos directos.
const (
	verdictManyDetails = "Many"
	verdictFewDetails  = "Few"
	verdictFourLegs    = "Four"
	verdictNotFourLegs = "NotFour"
	verdictLargeEars   = "Large"
	verdictLongTail    = "Long"
)

// Textos de los rasgos, indexados por categoría y veredicto. Las reglas los
// tratan como recursos opacos; cada texto ya termina en punto.
var statements = map[string]map[string]string{
	domain.TraitCategoryPlacement: {
		domain.PlacementTop:    "are a positive and optimistic person.",
		domain.PlacementMiddle: "are a realist.",
		domain.PlacementBottom: "are pessimistic and prone to behaving negatively.",
	},
	domain.TraitCategoryOrientation: {
		domain.OrientationLeft:  "believe in tradition, are friendly, and remember dates well.",
		domain.OrientationRight: "are innovative and active, but don't have a strong sense of family.",
		domain.OrientationFront: "are direct, enjoy playing devil's advocate and neither fear nor avoid discussion.",
	},
	domain.TraitCategoryDetails: {
		verdictManyDetails: "are analytical, cautious, and distrustful.",
		verdictFewDetails:  "are emotional and naive, care little for details, and are a risk-taker.",
	},
	domain.TraitCategoryLegs: {
		verdictFourLegs:    "are secure, stubborn, and stick to your ideals.",
		verdictNotFourLegs: "are insecure, or are living through a period of major change.",
	},
	domain.TraitCategoryEars: {
		verdictLargeEars: "are a good listener.",
	},
	domain.TraitCategoryTail: {
		verdictLongTail: "have a more than satisfying love life.",
	},
}

func statementFor(category, verdict string) string {
	return statements[category][verdict]
}
