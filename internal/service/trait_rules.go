package service

import (
	"math"
	"strconv"

	"pig-persona/internal/domain"
)

// Umbrales de decisión de las reglas. Todos se comparan con desigualdad
// estricta: una medición exactamente en el borde no califica para la rama
// "notable" (orejas/cola) o cae al bucket inferior (placement).
const (
	placementTopBelow    = 0.33
	placementBottomAbove = 0.67
	orientationOffsetMin = 0.2
	manyDetailsAbove     = 5
	secureLegCount       = 4
	largeEarRatioAbove   = 0.3
	longTailRatioAbove   = 0.4
)

// measurementSource etiqueta de dónde salió el valor que usó una regla:
// campo directo del analizador, derivación geométrica, o nada utilizable.
// Cada regla resuelve primero el campo directo y sólo deriva si está ausente.
type measurementSource int

const (
	sourceAbsent measurementSource = iota
	sourceDirect
	sourceDerived
)

type traitRule func(domain.Detection) (domain.PersonalityTrait, bool)

// InferTraits evalúa las seis reglas fijas, independientes y siempre en el
// mismo orden, sobre una Detection. Determinista: la misma entrada produce
// siempre la misma lista. Que una regla no emita rasgo es un resultado
// válido, no un error.
func InferTraits(det domain.Detection) []domain.PersonalityTrait {
	rules := []traitRule{
		placementRule,
		orientationRule,
		detailRule,
		legRule,
		earRule,
		tailRule,
	}

	var traits []domain.PersonalityTrait
	for _, rule := range rules {
		if t, ok := rule(det); ok {
			traits = append(traits, t)
		}
	}
	return traits
}

func makeTrait(category, verdict string, rawValue any) domain.PersonalityTrait {
	return domain.PersonalityTrait{
		Category:  category,
		Statement: statementFor(category, verdict),
		Evidence: domain.Evidence{
			Key:   category + "=" + verdict,
			Value: rawValue,
		},
	}
}

// placementRule ubica el sujeto en el tercio superior, medio o inferior del
// canvas. Exactamente 0.33 o 0.67 caen a Middle.
func placementRule(det domain.Detection) (domain.PersonalityTrait, bool) {
	verdict, raw, source := resolvePlacement(det)
	if source == sourceAbsent {
		return domain.PersonalityTrait{}, false
	}
	return makeTrait(domain.TraitCategoryPlacement, verdict, raw), true
}

func resolvePlacement(det domain.Detection) (string, any, measurementSource) {
	if det.VerticalPlacement != "" {
		return det.VerticalPlacement, det.VerticalPlacement, sourceDirect
	}

	if det.Overall.Canvas.Height <= 0 {
		return "", nil, sourceAbsent
	}
	ratio := det.Overall.BoundingBox.CenterY() / det.Overall.Canvas.Height

	switch {
	case ratio < placementTopBelow:
		return domain.PlacementTop, ratio, sourceDerived
	case ratio > placementBottomAbove:
		return domain.PlacementBottom, ratio, sourceDerived
	default:
		return domain.PlacementMiddle, ratio, sourceDerived
	}
}

// orientationRule decide hacia dónde mira el sujeto. Deriva del offset
// cabeza-cuerpo; sin cabeza o cuerpo cae al espaciado de orejas; sin nada
// utilizable, Front.
func orientationRule(det domain.Detection) (domain.PersonalityTrait, bool) {
	verdict, raw, _ := resolveOrientation(det)
	return makeTrait(domain.TraitCategoryOrientation, verdict, raw), true
}

func resolveOrientation(det domain.Detection) (string, any, measurementSource) {
	if det.Orientation != "" {
		return det.Orientation, det.Orientation, sourceDirect
	}

	if det.Head != nil && det.Body != nil && det.Body.BoundingBox.Width > 0 {
		offset := det.Head.BoundingBox.CenterX() - det.Body.BoundingBox.CenterX()
		if math.Abs(offset) > orientationOffsetMin*det.Body.BoundingBox.Width {
			if offset < 0 {
				return domain.OrientationLeft, offset, sourceDerived
			}
			return domain.OrientationRight, offset, sourceDerived
		}
		return domain.OrientationFront, offset, sourceDerived
	}

	if len(det.Ears) >= 2 && det.Overall.BoundingBox.Width > 0 {
		var sum float64
		for _, ear := range det.Ears {
			sum += ear.BoundingBox.CenterX()
		}
		offset := sum/float64(len(det.Ears)) - det.Overall.BoundingBox.CenterX()
		if math.Abs(offset) > orientationOffsetMin*det.Overall.BoundingBox.Width {
			if offset < 0 {
				return domain.OrientationLeft, offset, sourceDerived
			}
			return domain.OrientationRight, offset, sourceDerived
		}
	}

	return domain.OrientationFront, domain.OrientationFront, sourceDerived
}

// detailRule clasifica el nivel de detalle. Siempre derivada: más de 5
// sub-rasgos es Many, 5 o menos es Few.
func detailRule(det domain.Detection) (domain.PersonalityTrait, bool) {
	verdict := verdictFewDetails
	if det.DetailCount > manyDetailsAbove {
		verdict = verdictManyDetails
	}
	return makeTrait(domain.TraitCategoryDetails, verdict, det.DetailCount), true
}

// legRule cuenta patas. Sólo exactamente 4 califica como "secure"; más de 4
// también cae a la rama contraria.
func legRule(det domain.Detection) (domain.PersonalityTrait, bool) {
	count := len(det.Legs)
	if det.LegCount != nil {
		count = *det.LegCount
	}

	verdict := verdictNotFourLegs
	if count == secureLegCount {
		verdict = verdictFourLegs
	}

	t := makeTrait(domain.TraitCategoryLegs, verdict, count)
	// El token de evidencia lleva la cuenta cruda, no el veredicto.
	t.Evidence.Key = domain.TraitCategoryLegs + "=" + strconv.Itoa(count)
	return t, true
}

// earRule sólo emite rasgo para orejas notables: EarSize directo en Large, o
// altura media de oreja sobre altura de cabeza (o del canvas sin cabeza)
// estrictamente mayor a 0.3. Normal, borde exacto o sin orejas: sin rasgo.
func earRule(det domain.Detection) (domain.PersonalityTrait, bool) {
	if det.EarSize != "" {
		if det.EarSize != domain.EarSizeLarge {
			return domain.PersonalityTrait{}, false
		}
		return makeTrait(domain.TraitCategoryEars, verdictLargeEars, det.EarSize), true
	}

	if len(det.Ears) == 0 {
		return domain.PersonalityTrait{}, false
	}

	ref := det.Overall.Canvas.Height
	if det.Head != nil && det.Head.BoundingBox.Height > 0 {
		ref = det.Head.BoundingBox.Height
	}
	if ref <= 0 {
		return domain.PersonalityTrait{}, false
	}

	var sum float64
	for _, ear := range det.Ears {
		sum += ear.BoundingBox.Height
	}
	ratio := sum / float64(len(det.Ears)) / ref

	if ratio > largeEarRatioAbove {
		return makeTrait(domain.TraitCategoryEars, verdictLargeEars, ratio), true
	}
	return domain.PersonalityTrait{}, false
}

// tailRule sólo emite rasgo para colas notables: TailLength directo mayor a
// 0.4, o lado mayor de la región de cola sobre el ancho del cuerpo (o la
// dimensión mayor del canvas sin cuerpo) estrictamente mayor a 0.4.
func tailRule(det domain.Detection) (domain.PersonalityTrait, bool) {
	if det.TailLength != nil {
		if *det.TailLength > longTailRatioAbove {
			return makeTrait(domain.TraitCategoryTail, verdictLongTail, *det.TailLength), true
		}
		return domain.PersonalityTrait{}, false
	}

	if det.Tail == nil {
		return domain.PersonalityTrait{}, false
	}

	ref := det.Overall.Canvas.MaxDimension()
	if det.Body != nil && det.Body.BoundingBox.Width > 0 {
		ref = det.Body.BoundingBox.Width
	}
	if ref <= 0 {
		return domain.PersonalityTrait{}, false
	}

	ratio := det.Tail.BoundingBox.LongestSide() / ref
	if ratio > longTailRatioAbove {
		t := makeTrait(domain.TraitCategoryTail, verdictLongTail, ratio)
		t.Evidence.Confidence = &det.Tail.Confidence
		return t, true
	}
	return domain.PersonalityTrait{}, false
}
