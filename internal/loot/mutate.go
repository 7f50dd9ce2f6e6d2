package loot

// Structural edits. Indices come from the editor's selection state and are
// re-validated on every dispatch, so an out-of-bounds index here is a caller
// bug; deletes degrade to no-ops rather than panicking.

// AddType appends a new type with the given name and no fields, returning
// its index.
func (d *Document) AddType(name string) int {
	d.Types = append(d.Types, LootType{Name: name})
	return len(d.Types) - 1
}

// CopyType deep-clones the type at i and inserts the clone immediately
// after it, returning the clone's index. Duplicate names are permitted by
// the model; callers may rename the clone.
func (d *Document) CopyType(i int) int {
	if i < 0 || i >= len(d.Types) {
		return -1
	}
	clone := d.Types[i].Clone()
	d.Types = append(d.Types, LootType{})
	copy(d.Types[i+2:], d.Types[i+1:])
	d.Types[i+1] = clone
	return i + 1
}

// DeleteType removes the type at i. Out-of-range indices are a no-op.
func (d *Document) DeleteType(i int) {
	if i < 0 || i >= len(d.Types) {
		return
	}
	d.Types = append(d.Types[:i], d.Types[i+1:]...)
}

// RenameType sets the name of the type at i. Any text is accepted,
// including the empty string.
func (d *Document) RenameType(i int, name string) {
	if i < 0 || i >= len(d.Types) {
		return
	}
	d.Types[i].Name = name
}

// AddField appends a field with an empty text payload, returning its index.
func (t *LootType) AddField(name string) int {
	t.Fields = append(t.Fields, Field{Name: name})
	return len(t.Fields) - 1
}

// CopyField deep-clones the field at i and inserts the clone immediately
// after it, returning the clone's index.
func (t *LootType) CopyField(i int) int {
	if i < 0 || i >= len(t.Fields) {
		return -1
	}
	clone := t.Fields[i].clone()
	t.Fields = append(t.Fields, Field{})
	copy(t.Fields[i+2:], t.Fields[i+1:])
	t.Fields[i+1] = clone
	return i + 1
}

// DeleteField removes the field at i. Out-of-range indices are a no-op.
func (t *LootType) DeleteField(i int) {
	if i < 0 || i >= len(t.Fields) {
		return
	}
	t.Fields = append(t.Fields[:i], t.Fields[i+1:]...)
}

// SetFieldName renames the field at i.
func (t *LootType) SetFieldName(i int, name string) {
	if i < 0 || i >= len(t.Fields) {
		return
	}
	t.Fields[i].Name = name
}

// SetFieldValue replaces the payload of the field at i. For attribute
// fields the text goes into the first attribute's value, which is how the
// repeatable marker elements (category, usage, tag, flags) are edited.
func (t *LootType) SetFieldValue(i int, value string) {
	if i < 0 || i >= len(t.Fields) {
		return
	}
	f := &t.Fields[i]
	if f.HasAttrs() {
		f.Attrs[0].Value = value
		return
	}
	f.Value = value
}

// DefaultFields is the field template for a freshly added type: the
// standard economy counters plus the flags and category markers every
// types.xml entry carries.
func DefaultFields() []Field {
	return []Field{
		{Name: "nominal"},
		{Name: "lifetime"},
		{Name: "restock"},
		{Name: "min"},
		{Name: "quantmin"},
		{Name: "quantmax"},
		{Name: "cost"},
		{Name: "flags", Attrs: []Attr{
			{Name: "count_in_cargo", Value: "0"},
			{Name: "count_in_hoarder", Value: "0"},
			{Name: "count_in_map", Value: "1"},
			{Name: "count_in_player", Value: "0"},
			{Name: "crafted", Value: "0"},
			{Name: "deloot", Value: "0"},
		}},
		{Name: "category", Attrs: []Attr{{Name: "name", Value: ""}}},
	}
}
