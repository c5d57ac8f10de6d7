// Package config turns merged configuration into typed structs.
//
// Provider loads its inputs through an *anyconf.Loader, so any registered
// format and every merge strategy is available. Targets may implement two
// extension points:
//   - Defaulter: applies default values after decoding
//   - Validator: validates config after defaults are applied
//
// # Path Navigation
//
// The path parameter selects a section of the merged document using JSON
// Pointer style paths. Both "/" and "." work as separators:
//
//	"/api/permissions"          -> config["api"]["permissions"]
//	"database.connection"       -> config["database"]["connection"]
//	""                          -> entire document
//
// Fields are matched by their yaml struct tag, whatever the input format.
//
// # Example
//
//	type APIConfig struct {
//	    Timeout int    `yaml:"timeout"`
//	    BaseURL string `yaml:"base_url"`
//	}
//
//	provider := config.Provider(&APIConfig{}, "services.api", []string{"config.yaml", "local.toml"})
//	cfg, err := provider(loader)
package config
