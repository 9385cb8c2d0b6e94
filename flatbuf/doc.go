// Package flatbuf converts generic in-memory containers to and from FlatBuffers.
//
// Every convertible type is described by up to four capabilities: one way to read it from a
// wire view and three ways to place it in a buffer under construction (inline field, standalone
// table, vector element). Container codecs (sequences, ordered sets, ordered maps and shared
// references) are built from the codecs of their elements, so a container of any convertible
// element type converts without hand-written wire access.
//
// Writers append to a single *flatbuffers.Builder. Placements returned by the Write methods are
// only meaningful for the builder pass that produced them. Readers work on a finished buffer,
// never modify it and never keep references into it after they return.
package flatbuf
