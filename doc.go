// Package anyconf loads, merges and dumps configuration files of any
// supported format through one API.
//
// A Loader resolves a codec for every input from its file extension, or from
// a forced type or processor instance, decodes it into an ordered tree and
// merges multiple inputs with one of the strategies in package merge:
//
//	loader, err := anyconf.New()
//	cnf, err := loader.MultiLoad([]string{"base.yaml", "conf.d/*.toml"},
//	    anyconf.WithStrategy(merge.MergeDictsAndLists))
//	port, err := pointer.Get(cnf, "/server/port")
//
// Loaded data can be rendered as a template first, validated against a JSON
// Schema and filtered with a JMESPath query. Environment variables and
// "path=value" overrides join the merge through WithSources.
//
// NewModule and NewApp expose the Loader to Fx applications; package config
// turns a section of the merged configuration into a typed struct.
package anyconf
