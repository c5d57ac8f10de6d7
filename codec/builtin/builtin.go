// Package builtin assembles the codecs shipped with the module.
package builtin

import (
	"github.com/0xalexb/anyconf/codec/ini"
	"github.com/0xalexb/anyconf/codec/json"
	"github.com/0xalexb/anyconf/codec/properties"
	"github.com/0xalexb/anyconf/codec/shellvars"
	"github.com/0xalexb/anyconf/codec/toml"
	"github.com/0xalexb/anyconf/codec/yaml"
	"github.com/0xalexb/anyconf/processor"
)

// Processors returns fresh instances of every built-in codec.
func Processors() []processor.Processor {
	return []processor.Processor{
		json.New(),
		yaml.New(),
		toml.New(),
		ini.New(),
		properties.New(),
		shellvars.New(),
	}
}

// NewRegistry returns a registry holding the built-in codecs followed by
// extra.
func NewRegistry(extra ...processor.Processor) (*processor.Registry, error) {
	return processor.NewRegistry(append(Processors(), extra...)...)
}
