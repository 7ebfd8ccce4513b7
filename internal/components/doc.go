// Package components holds the borrowed views a parsed line is projected into:
// Tags, Source, Command and Params.
//
// Every view wraps a substring of the original line and splits it further
// only when asked to. Iterators walk the substring in place; nothing is
// copied unless a method says so (Tag.Unescaped, Params.AppendTo).
//
// None of the views normalize, validate or case-fold what they hold.
package components
