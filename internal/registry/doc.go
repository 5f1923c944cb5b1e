// Package registry provides the central "glue" for the bundle system.
//
// Every bundle module registers its static descriptor together with the
// extension that configures it. During application startup the registry is
// populated, then validated, so that a misdeclared bundle (unknown driver,
// clashing alias, unsupported file format) is reported before any file is
// read.
package registry
