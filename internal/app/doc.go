// Package app contains the application kernel. It loads the configuration
// model, registers the compiled-in bundles, builds and compiles the service
// container and renders the result, decoupled from any specific entrypoint
// like a CLI.
package app
