// Package scanner splits one IRC protocol line into its grammar regions.
//
//	['@' <tags> <SPACE>] [':' <source> <SPACE>] <command> <params>
//	<params> ::= *( <SPACE> <middle> ) [ <SPACE> ':' <trailing> ]
//
// Scan makes a single left-to-right pass and records half-open byte spans
// into the input. It never copies, never allocates and never fails: a
// malformed line yields empty or absent regions, and deciding whether that
// is acceptable is left to the caller (see internal/validate).
//
// The input must not contain the CR/LF terminator; stripping it is the job
// of the framing layer (internal/lineio).
package scanner
