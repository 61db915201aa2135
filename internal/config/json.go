package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the optional JSON config
// file. Durations accept Go duration strings ("5s") or nanosecond numbers.
type StructuredJSONConfig struct {
	Port string `json:"port,omitempty"`

	App struct {
		Version  string `json:"version"`
		LogLevel string `json:"log_level"`
	} `json:"app,omitempty"`

	Server struct {
		StaticDir         string   `json:"static_dir"`
		APIPrefix         string   `json:"api_prefix"`
		ShutdownTimeout   Duration `json:"shutdown_timeout"`
		ReadHeaderTimeout Duration `json:"read_header_timeout"`
		RateLimitRPS      float64  `json:"rate_limit_rps"`
		RateLimitBurst    int      `json:"rate_limit_burst"`
	} `json:"server,omitempty"`

	Body struct {
		JSONLimit        int64 `json:"json_limit"`
		URLEncodedLimit  int64 `json:"urlencoded_limit"`
		ParameterLimit   int   `json:"parameter_limit"`
		Depth            *int  `json:"depth"`
		ArrayLimit       *int  `json:"array_limit"`
		SimpleURLEncoded bool  `json:"simple_urlencoded"`
	} `json:"body,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Port: jsonCfg.Port,
		App: App{
			Version:  jsonCfg.App.Version,
			LogLevel: jsonCfg.App.LogLevel,
		},
		Server: Server{
			StaticDir:         jsonCfg.Server.StaticDir,
			APIPrefix:         jsonCfg.Server.APIPrefix,
			ShutdownTimeout:   time.Duration(jsonCfg.Server.ShutdownTimeout),
			ReadHeaderTimeout: time.Duration(jsonCfg.Server.ReadHeaderTimeout),
			RateLimitRPS:      jsonCfg.Server.RateLimitRPS,
			RateLimitBurst:    jsonCfg.Server.RateLimitBurst,
		},
		Body: Body{
			JSONLimit:        jsonCfg.Body.JSONLimit,
			URLEncodedLimit:  jsonCfg.Body.URLEncodedLimit,
			ParameterLimit:   jsonCfg.Body.ParameterLimit,
			Depth:            jsonCfg.Body.Depth,
			ArrayLimit:       jsonCfg.Body.ArrayLimit,
			SimpleURLEncoded: jsonCfg.Body.SimpleURLEncoded,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
