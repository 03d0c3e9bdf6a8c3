// Package export serializes generated levels: JSON for game runtimes and
// tooling, SVG for quick visual inspection of a seed. Consumers that need
// pixel coordinates multiply tile positions by the exported tileSize.
package export
