package resolver

// nameBlocks assigns every block a unique debug name, root first: '_',
// then 'a', 'b', 'c', ... with children appending their own letter to
// their parent's name. Only runs when Mode&NameBlocks is set, so it
// costs nothing otherwise.
func (r *Resolver) nameBlocks() {
	for r.root.parent != nil {
		r.root = r.root.parent
	}
	nameBlock(r.root)
}

func nameBlock(b *block) {
	if b.parent == nil {
		b.name = "_"
		for _, vd := range b.bindings {
			vd.BlockName = b.name
		}
	}
	for i, cb := range b.children {
		cb.name = b.name + letterFor(i)
		for _, vd := range cb.bindings {
			if vd.BlockName == "" {
				vd.BlockName = cb.name
			}
		}
		nameBlock(cb)
	}
}

func letterFor(i int) string {
	if i < 26 {
		return string(rune('a' + i))
	}
	if i < 52 {
		return string(rune('A' + i - 26))
	}
	return "?"
}
