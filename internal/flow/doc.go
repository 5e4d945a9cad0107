// Package flow owns the optical-flow data model: the in-memory Field grid,
// the .flo/.floc binary codec, bilinear resampling, and per-field summary
// statistics.
//
// The wire format is fixed little-endian:
//
//	[4-byte tag][int32 width][int32 height][width*height*channels float32]
//
// Tag "PIEH" carries two channels per cell (u, v); tag "PIEI" carries three
// (u, v, confidence). Files produced by other tools in the ecosystem use
// this exact layout, so the codec must stay byte-compatible.
//
// No SQL/database code is allowed in this package.
package flow
