// Package yaml provides the YAML codec.
//
// This package uses github.com/goccy/go-yaml. Documents are decoded with
// yaml.UseOrderedMap so that mappings come back as yaml.MapSlice, which is
// then converted into *tree.Map keeping the document's key order. Encoding
// converts trees back into yaml.MapSlice for the same reason.
//
// Usage:
//
//	c := yaml.New()
//	data, err := c.Decode([]byte("name: app\nport: 8080\n"))
//
// Non-string mapping keys are stringified with fmt.Sprint. Only the first
// document of a multi-document stream is decoded.
package yaml
