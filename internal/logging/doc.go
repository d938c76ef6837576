// Package logging provides file-based structured logging with rotation.
// Logs are JSON lines written to ~/.invsearch/logs/invsearch.log; with
// --debug the level drops to debug and entries are mirrored to stderr.
package logging
