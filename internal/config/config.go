package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort             string `env:"HTTP_PORT" envDefault:"8080"`
	VisionEndpoint       string `env:"VISION_ENDPOINT"`
	VisionKey            string `env:"VISION_KEY"`
	VisionPollIntervalMS int    `env:"VISION_POLL_INTERVAL_MS" envDefault:"1000"`
	VisionPollAttempts   int    `env:"VISION_POLL_ATTEMPTS" envDefault:"60"`
}

// LoadConfig carga la configuración desde variables de entorno. Endpoint y
// key del analizador se validan en el constructor del cliente, no acá.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
