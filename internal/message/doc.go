// Package message is the view layer over a scanned IRC line.
//
// A Message pairs the raw input with the spans found by scanner.Scan and
// projects them into components views on demand. Nothing is cached and
// nothing is copied: every accessor re-slices the input.
//
// Builder goes the other way and assembles an owned line from parts.
package message
