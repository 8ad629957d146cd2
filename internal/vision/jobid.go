package vision

import (
	"encoding/json"
	"net/http"
	"strings"
)

// El servicio productor no es consistente sobre dónde coloca el identificador
// del trabajo. En vez de encadenar accesos opcionales, cada ubicación posible
// es una estrategia; se prueban en orden y gana la primera que encuentra algo.
type jobIDStrategy func(body map[string]any, header http.Header) string

var jobIDStrategies = []jobIDStrategy{
	func(body map[string]any, _ http.Header) string { return stringField(body, "jobId") },
	func(body map[string]any, _ http.Header) string { return stringField(body, "id") },
	func(body map[string]any, _ http.Header) string {
		op, ok := body["operation"].(map[string]any)
		if !ok {
			return ""
		}
		return stringField(op, "id")
	},
	func(_ map[string]any, header http.Header) string {
		loc := header.Get("Operation-Location")
		if loc == "" {
			return ""
		}
		loc = strings.TrimRight(loc, "/")
		if i := strings.LastIndexByte(loc, '/'); i >= 0 {
			return loc[i+1:]
		}
		return loc
	},
}

// extractJobID busca el identificador del trabajo en la respuesta de envío.
func extractJobID(respBody []byte, header http.Header) (string, bool) {
	var body map[string]any
	// Un body no-JSON no es fatal: el header todavía puede traer el id.
	_ = json.Unmarshal(respBody, &body)

	for _, strategy := range jobIDStrategies {
		if id := strategy(body, header); id != "" {
			return id, true
		}
	}
	return "", false
}

func stringField(m map[string]any, key string) string {
	v, ok := m[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}
