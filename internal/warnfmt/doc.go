// Package warnfmt renders warnings for humans.
//
// It owns the two presentation steps of an emission: positional
// interpolation of producer arguments into the message (Interpolate,
// Message) and the final one-line layout (Renderer). Classification and
// filtering live elsewhere; nothing here knows about suppression rules.
package warnfmt
