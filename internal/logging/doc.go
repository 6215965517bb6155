// Package logging provides the structured logging interface used by the
// checkedcalc binary. The library package never logs; only the command-line
// layers do, through the zerolog-backed adapter defined here.
package logging
