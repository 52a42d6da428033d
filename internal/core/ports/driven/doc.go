// Package driven defines the outbound ports of the core: persistence for
// the section corpus, the template collection and configuration. Adapters
// under internal/adapters/driven implement these interfaces.
package driven
