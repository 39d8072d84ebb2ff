/*
 * SPDX-FileCopyrightText: © Shamogulang and Contributors
 * SPDX-License-Identifier: Apache-2.0
 */

package docvalues

// ParseContext tracks the aggregates of one document while it is being
// parsed. At most one Field exists per field name; a second shape value for
// the same field must Add to the existing aggregate. The context belongs to
// a single document worker and needs no locking.
type ParseContext struct {
	fields map[string]*Field
	order  []string
}

func NewParseContext() *ParseContext {
	return &ParseContext{fields: make(map[string]*Field)}
}

// Existing returns the aggregate registered under name, or nil.
func (pc *ParseContext) Existing(name string) *Field {
	return pc.fields[name]
}

// Register records a new aggregate. Registering a second aggregate for the
// same field name is a programming error upstream; the first one wins.
func (pc *ParseContext) Register(f *Field) {
	if _, ok := pc.fields[f.Name()]; ok {
		return
	}
	pc.fields[f.Name()] = f
	pc.order = append(pc.order, f.Name())
}

// Fields returns the aggregates in registration order, for finalization
// when the document's parse completes.
func (pc *ParseContext) Fields() []*Field {
	out := make([]*Field, len(pc.order))
	for i, name := range pc.order {
		out[i] = pc.fields[name]
	}
	return out
}
