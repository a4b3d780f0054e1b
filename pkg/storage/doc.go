// Package storage provides persistence of pipeline documents.
//
// Stored pipelines carry the raw JSON document plus metadata (uuid
// identifier, name, description, timestamps). The store does not
// interpret the document beyond checking that it is valid JSON; full
// validation happens when the document is parsed for execution.
//
// Two implementations exist, both safe for concurrent use: InMemoryStore
// keeps entries for the lifetime of the process, and FileStore keeps one
// JSON file per pipeline in a directory and is the backend of the CLI.
package storage
