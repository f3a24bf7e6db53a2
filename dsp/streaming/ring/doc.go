// Package ring implements the fixed-capacity circular sample window shared
// by every streaming transform: a flat backing array plus a head index and
// element count, generalizing the ring-index arithmetic of dsp/delay.Line
// with wrap detection, bulk append fast paths, and zero-padded windowed
// reads.
package ring
