package mcp

import (
	"github.com/kbase-labs/kbase-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Repository owns the section corpus.
	Repository driving.Repository

	// Templates manages the prompt templates.
	Templates driving.TemplateManager

	// Bundles writes export bundles.
	Bundles driving.BundleBuilder
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Repository == nil {
		return ErrMissingRepository
	}
	// Templates and Bundles are only needed by the export tool
	return nil
}
