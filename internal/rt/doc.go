// Package rt is the operator library that generated shader code calls
// through its runtime handle.
//
// Scalars are float64 or bool. Vectors (*Vec), matrices (*Mat) and uniform
// arrays (*Array) are immutable from the caller's point of view: every
// operation, including Set, returns a new value.
//
// Every vector-capable function goes through Broadcast: a vector operand
// makes the scalar form apply componentwise, bare scalars are extended to the
// vector's dimension, and two vectors of different dimension are an error.
package rt
