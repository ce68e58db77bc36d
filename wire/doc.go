// Package wire implements the byte level encodings the merkle proof
// engine consumes and produces: the bitcoin variable length integer,
// LSB first flag bit packing, and the merkleblock proof payload
// (leaf total, supplied hash list, flag bytes).
//
// All multi byte fields are little endian. Decoders never trust a
// declared length before bounding it, and reject non canonical or
// truncated input outright; there are no partial results.
package wire
