/*
Package input turns user-facing data into arrays for the trace engine.

Parse reads a comma-separated list of integers and rejects the whole input
(malformed entry, too many entries, or no entries) with an error wrapping
domain.ErrInvalidInput; callers keep their previous trace in that case.
Generator produces random arrays within inclusive bounds.
*/
package input
