package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

type Server struct {
	BaseURL string `yaml:"baseUrl"`

	// Version pins the protocol version up front and skips negotiation.
	Version string `yaml:"version"`

	// TimeoutSeconds bounds each individual request round trip.
	TimeoutSeconds int `yaml:"timeoutSeconds"`

	// QueryParams are extra query parameters sent with every request.
	QueryParams map[string]string `yaml:"queryParams"`

	// Filter is an optional jq expression applied to the capabilities
	// output by the CLI.
	Filter string `yaml:"filter"`

	Auth struct {
		Header map[string]string `yaml:"header"`
		Basic  struct {
			Username string `yaml:"username"`
			Password string `yaml:"password"`
		} `yaml:"basic"`
		TLS struct {
			RootCertificates string `yaml:"rootCertificates"`
			Certificate      string `yaml:"certificate"`
			Key              string `yaml:"key"`
		} `yaml:"tls"`
	} `yaml:"auth"`
}

type Config struct {
	Servers map[string]Server `yaml:"servers"`
}

// NewConfig returns a new decoded Config struct
func NewConfig(configPath string) (*Config, error) {
	// Create config structure
	config := &Config{}

	// Open config file
	file, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// Init new YAML decode
	d := yaml.NewDecoder(file)

	// Start YAML decoding from file
	if err := d.Decode(&config); err != nil {
		return nil, err
	}

	return config, nil
}
