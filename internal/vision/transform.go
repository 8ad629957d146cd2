package vision

import (
	"fmt"
	"strings"

	"pig-persona/internal/domain"
)

// resultPayload es el resultado heterogéneo del analizador. Puede traer una
// lista de regiones etiquetadas, un juego de campos escalares directos, o una
// mezcla de ambos; la forma se decide por lo que el payload contiene.
type resultPayload struct {
	Regions []regionPayload `json:"regions"`
	Canvas  *canvasPayload  `json:"canvas,omitempty"`

	DetailCount *int `json:"detailCount,omitempty"`

	VerticalPlacement string   `json:"verticalPlacement,omitempty"`
	Orientation       string   `json:"orientation,omitempty"`
	LegCount          *int     `json:"legCount,omitempty"`
	EarSize           string   `json:"earSize,omitempty"`
	TailLength        *float64 `json:"tailLength,omitempty"`

	Description           string   `json:"description,omitempty"`
	DescriptionConfidence *float64 `json:"descriptionConfidence,omitempty"`
}

type regionPayload struct {
	Category    string     `json:"category"`
	Confidence  float64    `json:"confidence"`
	BoundingBox boxPayload `json:"boundingBox"`
}

type boxPayload struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type canvasPayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (p *resultPayload) hasDirectFields() bool {
	return p.VerticalPlacement != "" ||
		p.Orientation != "" ||
		p.LegCount != nil ||
		p.EarSize != "" ||
		p.TailLength != nil
}

// transformResult convierte el payload del analizador en una Detection.
// Las piezas opcionales ausentes dejan el campo correspondiente vacío; un
// payload sin regiones ni escalares directos es ErrMalformedResult.
func transformResult(p *resultPayload) (domain.Detection, error) {
	if len(p.Regions) == 0 && !p.hasDirectFields() {
		return domain.Detection{}, fmt.Errorf("%w: no regions and no direct fields", ErrMalformedResult)
	}

	var det domain.Detection

	haveUnion := false
	var union domain.BoundingBox
	for _, r := range p.Regions {
		region := domain.DetectionRegion{
			BoundingBox: domain.BoundingBox(r.BoundingBox),
			Confidence:  r.Confidence,
			Category:    r.Category,
		}

		if !haveUnion {
			union = region.BoundingBox
			haveUnion = true
		} else {
			union = union.Union(region.BoundingBox)
		}

		// Partición por substring case-insensitive sobre la etiqueta.
		// Para head/body/tail se queda la primera región que matchea.
		cat := strings.ToLower(r.Category)
		switch {
		case strings.Contains(cat, "head"):
			if det.Head == nil {
				det.Head = &region
			}
		case strings.Contains(cat, "body"):
			if det.Body == nil {
				det.Body = &region
			}
		case strings.Contains(cat, "tail"):
			if det.Tail == nil {
				det.Tail = &region
			}
		case strings.Contains(cat, "leg"):
			det.Legs = append(det.Legs, region)
		case strings.Contains(cat, "ear"):
			det.Ears = append(det.Ears, region)
		}
	}
	det.Overall.BoundingBox = union

	switch {
	case p.Canvas != nil:
		det.Overall.Canvas = domain.Canvas(*p.Canvas)
	case haveUnion:
		// Sin canvas explícito, el marco de referencia es la unión misma.
		det.Overall.Canvas = domain.Canvas{Width: union.Width, Height: union.Height}
	}

	if p.DetailCount != nil {
		det.DetailCount = *p.DetailCount
	} else {
		det.DetailCount = len(p.Regions)
	}

	// Los campos directos pasan tal cual: son autoritativos sobre cualquier
	// valor derivado de regiones.
	det.VerticalPlacement = p.VerticalPlacement
	det.Orientation = p.Orientation
	det.LegCount = p.LegCount
	det.EarSize = p.EarSize
	det.TailLength = p.TailLength

	det.Description = p.Description
	det.DescriptionConfidence = p.DescriptionConfidence

	return det, nil
}
