// Package source provides the inputs a configuration can be assembled from.
//
// Two kinds of inputs exist. A Fetcher returns raw bytes that still need a
// codec: File reads a file from the filesystem and Reader drains an
// io.Reader such as stdin. A Source already produces a tree and bypasses
// codecs entirely: Environ maps prefixed environment variables and Options
// maps "key.path=value" option lists.
//
// Files are read at construction time and cached, meaning subsequent calls
// to Fetch() return the same data without re-reading the filesystem.
//
// Usage:
//
//	paths, err := source.Expand("conf.d/*.yml", "local.json")
//	fetcher, err := source.NewFile(paths[0])
//	data, err := fetcher.Fetch()
//
//	env := source.Environ("APP", os.Environ())
//	overrides, err := env.Tree()
//
// Error Handling:
//   - File construction returns an error if the file cannot be read or the path is a directory
//   - Errors include the filepath for easier debugging
//   - Use errors.Is(err, source.ErrPathIsDirectory) to check for directory errors
package source
