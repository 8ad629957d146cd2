package domain

// BoundingBox es una caja alineada a los ejes con origen arriba-izquierda,
// en pixeles sin unidad relativos a un Canvas. El analizador puede mandar
// ancho/alto en cero o negativo; los helpers tratan esas cajas como
// degeneradas en lugar de fallar.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CenterX devuelve el centro horizontal de la caja.
func (b BoundingBox) CenterX() float64 { return b.X + b.Width/2 }

// CenterY devuelve el centro vertical de la caja.
func (b BoundingBox) CenterY() float64 { return b.Y + b.Height/2 }

// LongestSide devuelve la dimensión mayor de la caja.
func (b BoundingBox) LongestSide() float64 {
	if b.Width > b.Height {
		return b.Width
	}
	return b.Height
}

// IsDegenerate indica si la caja no encierra área utilizable.
func (b BoundingBox) IsDegenerate() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Union devuelve la caja mínima que contiene a ambas.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	minX := b.X
	if o.X < minX {
		minX = o.X
	}
	minY := b.Y
	if o.Y < minY {
		minY = o.Y
	}
	maxX := b.X + b.Width
	if ox := o.X + o.Width; ox > maxX {
		maxX = ox
	}
	maxY := b.Y + b.Height
	if oy := o.Y + o.Height; oy > maxY {
		maxY = oy
	}
	return BoundingBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Canvas es el marco de referencia en el que se midieron las cajas.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MaxDimension devuelve el lado mayor del canvas.
func (c Canvas) MaxDimension() float64 {
	if c.Width > c.Height {
		return c.Width
	}
	return c.Height
}

// DetectionRegion es un rasgo anatómico localizado con confianza del analizador.
type DetectionRegion struct {
	BoundingBox BoundingBox `json:"bounding_box"`
	Confidence  float64     `json:"confidence"`
	Category    string      `json:"category"`
}

// OverallRegion son los límites del sujeto completo más su marco de referencia.
type OverallRegion struct {
	BoundingBox BoundingBox `json:"bounding_box"`
	Canvas      Canvas      `json:"canvas"`
}

// Valores de los campos escalares directos que puede mandar la variante
// "inteligente" del analizador. Cadena vacía significa ausente.
const (
	PlacementTop    = "Top"
	PlacementMiddle = "Middle"
	PlacementBottom = "Bottom"

	OrientationLeft  = "Left"
	OrientationRight = "Right"
	OrientationFront = "Front"

	EarSizeLarge  = "Large"
	EarSizeNormal = "Normal"
)

// Detection es la representación canónica de lo que se encontró en un dibujo.
// Datos puros: las reglas de inferencia viven en internal/service.
//
// Los campos escalares directos (VerticalPlacement, Orientation, LegCount,
// EarSize, TailLength) vienen pre-interpretados por el analizador y son
// autoritativos: cuando están presentes, toda regla debe preferirlos sobre
// cualquier derivación geométrica de las regiones.
type Detection struct {
	Overall OverallRegion `json:"overall"`

	Head *DetectionRegion  `json:"head,omitempty"`
	Body *DetectionRegion  `json:"body,omitempty"`
	Tail *DetectionRegion  `json:"tail,omitempty"`
	Legs []DetectionRegion `json:"legs,omitempty"`
	Ears []DetectionRegion `json:"ears,omitempty"`

	DetailCount int `json:"detail_count"`

	VerticalPlacement string   `json:"vertical_placement,omitempty"`
	Orientation       string   `json:"orientation,omitempty"`
	LegCount          *int     `json:"leg_count,omitempty"`
	EarSize           string   `json:"ear_size,omitempty"`
	TailLength        *float64 `json:"tail_length,omitempty"`

	Description           string   `json:"description,omitempty"`
	DescriptionConfidence *float64 `json:"description_confidence,omitempty"`
}
