// Package style holds the pure configuration of a report: page geometry,
// layout constants and the color palette.
//
// A [Theme] is a value. The engine receives it per generation call, so
// concurrent generations with different themes never interfere.
//
// [ForScore] is the one place where a score is classified into a [Status];
// every renderer that colors a score goes through it.
package style
