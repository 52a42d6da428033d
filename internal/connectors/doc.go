// Package connectors groups the source collaborators that feed raw
// documents into the ingestion pipeline. The only connector is the local
// filesystem walker; each configured source root is bound to one document
// category.
package connectors
