package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"pig-persona/internal/domain"
)

// Analyzer abstrae la adquisición de detecciones desde el servicio externo
// de visión. Client es la implementación real; MockAnalyzer sirve para tests.
type Analyzer interface {
	AcquireDetection(ctx context.Context, imageRef string) (domain.Detection, error)
}

var (
	// ErrNotConfigured indica que faltan endpoint o key del analizador.
	ErrNotConfigured = errors.New("vision analyzer not configured")
	// ErrSubmissionRejected indica que el envío fue rechazado o que la
	// respuesta no trajo ningún identificador de trabajo reconocible.
	ErrSubmissionRejected = errors.New("vision submission rejected")
	// ErrRemoteFailure indica que el trabajo remoto terminó en Failed.
	ErrRemoteFailure = errors.New("vision analysis failed remotely")
	// ErrAcquisitionTimeout indica que se agotó el presupuesto de polling
	// sin alcanzar un estado terminal.
	ErrAcquisitionTimeout = errors.New("vision analysis timed out")
	// ErrMalformedResult indica un resultado exitoso sin regiones ni
	// campos escalares reconocibles.
	ErrMalformedResult = errors.New("vision result payload malformed")
)

const (
	defaultPollInterval = time.Second
	defaultPollAttempts = 60
)

// Config agrupa la configuración del cliente. Endpoint y Key son
// obligatorios; el resto cae a los defaults del protocolo.
type Config struct {
	Endpoint     string
	Key          string
	PollInterval time.Duration
	PollAttempts int
}

// Client habla con el analizador de visión: envía la referencia de imagen,
// hace polling del trabajo y transforma el resultado en una Detection.
// No cachea ni reintenta por encima del loop de polling.
type Client struct {
	endpoint     string
	key          string
	pollInterval time.Duration
	pollAttempts int
	client       *http.Client
	logger       *zap.Logger
}

// NewClient construye el cliente validando la configuración de entrada.
// La ausencia de endpoint o key falla acá, no en la primera llamada.
func NewClient(cfg Config, logger *zap.Logger, httpClient *http.Client) (*Client, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" || strings.TrimSpace(cfg.Key) == "" {
		return nil, ErrNotConfigured
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.PollAttempts <= 0 {
		cfg.PollAttempts = defaultPollAttempts
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:     strings.TrimRight(cfg.Endpoint, "/"),
		key:          cfg.Key,
		pollInterval: cfg.PollInterval,
		pollAttempts: cfg.PollAttempts,
		client:       httpClient,
		logger:       logger,
	}, nil
}

// AcquireDetection ejecuta la secuencia submit → poll → transform.
// Cada salida de falla es un error tipado; nada se traga en silencio.
func (c *Client) AcquireDetection(ctx context.Context, imageRef string) (domain.Detection, error) {
	jobID, err := c.submit(ctx, imageRef)
	if err != nil {
		return domain.Detection{}, err
	}

	result, err := c.pollResult(ctx, jobID)
	if err != nil {
		return domain.Detection{}, err
	}

	return transformResult(result)
}

func (c *Client) submit(ctx context.Context, imageRef string) (string, error) {
	reqBody := submitRequest{Image: imageLocator{URL: imageRef}}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal submit request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/analyses", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create submit request: %w", err)
	}
	req.Header.Set("Prediction-Key", c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("submit image: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read submit response: %w", err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("vision submit rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)
		return "", fmt.Errorf("%w: status=%d", ErrSubmissionRejected, resp.StatusCode)
	}

	jobID, ok := extractJobID(respBody, resp.Header)
	if !ok {
		return "", fmt.Errorf("%w: no job id in response", ErrSubmissionRejected)
	}

	c.logger.Debug("vision job submitted", zap.String("job_id", jobID))
	return jobID, nil
}

// pollResult consulta el estado del trabajo a intervalo fijo hasta alcanzar
// un estado terminal o agotar el presupuesto de intentos. Entre intentos
// duerme el intervalo completo; nunca busy-loop.
func (c *Client) pollResult(ctx context.Context, jobID string) (*resultPayload, error) {
	for attempt := 0; attempt < c.pollAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(c.pollInterval)
		}

		env, err := c.fetchStatus(ctx, jobID)
		if err != nil {
			return nil, err
		}

		switch strings.ToLower(env.Status) {
		case "succeeded":
			if env.Result == nil {
				return nil, fmt.Errorf("%w: succeeded without result", ErrMalformedResult)
			}
			return env.Result, nil
		case "failed":
			msg := "unknown remote error"
			if env.Error != nil && env.Error.Message != "" {
				msg = env.Error.Message
			}
			return nil, fmt.Errorf("%w: %s", ErrRemoteFailure, msg)
		default:
			// notStarted, running o cualquier estado desconocido:
			// otro ciclo de espera y reintento.
			c.logger.Debug("vision job pending",
				zap.String("job_id", jobID),
				zap.String("status", env.Status),
				zap.Int("attempt", attempt+1),
			)
		}
	}

	return nil, fmt.Errorf("%w: after %d attempts", ErrAcquisitionTimeout, c.pollAttempts)
}

func (c *Client) fetchStatus(ctx context.Context, jobID string) (statusEnvelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/analyses/"+jobID, nil)
	if err != nil {
		return statusEnvelope{}, fmt.Errorf("create status request: %w", err)
	}
	req.Header.Set("Prediction-Key", c.key)

	resp, err := c.client.Do(req)
	if err != nil {
		return statusEnvelope{}, fmt.Errorf("fetch status: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return statusEnvelope{}, fmt.Errorf("read status response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return statusEnvelope{}, fmt.Errorf("status http error: status=%d", resp.StatusCode)
	}

	var env statusEnvelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return statusEnvelope{}, fmt.Errorf("unmarshal status response: %w", err)
	}
	return env, nil
}

type submitRequest struct {
	Image imageLocator `json:"image"`
}

type imageLocator struct {
	URL string `json:"url"`
}

type statusEnvelope struct {
	Status string         `json:"status"`
	Result *resultPayload `json:"result,omitempty"`
	Error  *remoteError   `json:"error,omitempty"`
}

type remoteError struct {
	Message string `json:"message"`
}
