// Package mcp provides an MCP (Model Context Protocol) server adapter for
// kbase. It lets AI assistants browse the section database, manage the
// selection and produce prompt bundles.
package mcp

import "errors"

// ErrMissingRepository is returned when the repository port is not provided.
var ErrMissingRepository = errors.New("mcp: repository service is required")
