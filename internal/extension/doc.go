// Package extension turns a bundle's raw configuration into container
// parameters and service definitions.
//
// Configure runs a fixed pipeline: normalize the configuration, run the
// post-process hook, load the base service files, then the opt-in stages
// (database, parameters, validators) in that order, and finally merge the
// bundle's classes into the shared class registry. Any failure aborts the
// pipeline; nothing is rolled back, the whole build is expected to fail.
package extension
