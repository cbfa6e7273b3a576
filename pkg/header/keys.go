package header

import "strconv"

// keyer assigns identity keys of the form "kind:href#n", where n counts the
// earlier entries with the same kind and href. Keys are unique within one
// list and stay attached to an entry when distinct entries are reordered.
type keyer struct {
	seen map[string]int
}

func newKeyer() *keyer {
	return &keyer{seen: map[string]int{}}
}

func (k *keyer) next(kind, href string) string {
	base := kind + ":" + href
	n := k.seen[base]
	k.seen[base] = n + 1
	return base + "#" + strconv.Itoa(n)
}
