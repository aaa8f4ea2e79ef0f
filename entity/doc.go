/*
Package entity defines the storage cell of the entity arena and the concrete kinds it can hold.

A Slot is a flat value: a common Header followed by one payload field per concrete kind. Only the payload that
matches Header.Kind is meaningful; all others stay zeroed. Nothing in a Slot is heap-allocated on its own, so an
arena of N slots is a single allocation made once at startup.

Callers narrow a slot to its concrete kind with Is and As:

	if guest, ok := entity.As[entity.Guest](slot); ok {
		guest.Happiness++
	}

A mismatched As is a normal outcome during heterogeneous iteration and reports false rather than an error.

Every concrete kind appends its fields to a codec.Stream in a fixed order through Serialise. The stream feeds the
network checksum, so field order is part of the wire contract and must not change.
*/
package entity
