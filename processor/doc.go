// Package processor describes format handlers and resolves which of them
// should handle a given input.
//
// A Processor is a small descriptor: a unique id, a type tag such as "json",
// a priority between 0 and 99 and the file extensions it claims. Processors
// are collected in a Registry that is built once at startup and only read
// afterwards; it is not safe to register concurrently with lookups.
//
// Lookups never consult hidden state. Every resolver function receives its
// candidates explicitly, usually Registry.List(false), and orders matches by
// descending priority. Processors of equal priority keep their listing order:
//
//	ps := registry.List(false)
//	p, err := processor.Find("conf/app.yml", ps, nil)
//	p, err = processor.Find("", ps, processor.ByType("toml"))
package processor
