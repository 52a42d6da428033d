// Package services contains the core business logic: the section
// repository with its ingestion pipeline, the prompt template manager and
// the export bundle builder. Services depend on driven ports only; the
// CLI and MCP adapters drive them through the driving ports.
package services
