// Package domain contains the core entities of the section knowledge base:
// sections and their categories, repository metadata, prompt templates and
// the filters used to query the section corpus. It has no dependencies on
// adapters or infrastructure.
package domain
