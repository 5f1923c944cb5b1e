// Package mapping builds the compiler passes that register model metadata
// mapping drivers with a persistence driver's managers.
//
// Pass builders live in a Factory keyed by (driver, mapping format). A
// bundle asks the factory for one pass per supported driver; drivers with no
// registered builder are skipped. Each pass only takes effect when its
// enabling parameter is true at compile time, so a bundle can declare passes
// for every driver it supports while only the configured one contributes.
package mapping
