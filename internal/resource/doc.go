// Package resource resolves which provider or factory method serves a
// resource operation, honouring per-resource overrides from configuration.
//
// Providers and factories expose a closed table of named methods (MethodSet)
// instead of being called reflectively; an override can only select among
// the methods the collaborator registered.
package resource
