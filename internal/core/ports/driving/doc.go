// Package driving defines the inbound ports of the core: the repository
// API consumed by the CLI and MCP adapters, template management and the
// output bundle builder.
package driving
