package source

import (
	"slices"
	"strings"
)

type StringID uint32

const NoStringID StringID = 0

// Interner хранит уникальные строки и считает, сколько раз каждая встретилась.
// Строки копируются при первой вставке, поэтому интернированный текст
// не удерживает в памяти буфер, из которого был вырезан.
type Interner struct {
	byID  []string            // индекс -> строка (byID[0] = "" для NoStringID)
	hits  []int               // индекс -> количество вставок
	index map[string]StringID // строка -> ID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		hits:  []int{0},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern вставляет строку и возвращает её ID, увеличивая счётчик вхождений.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		i.hits[id]++
		return id
	}
	cpy := strings.Clone(s)
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.hits = append(i.hits, 1)
	i.index[cpy] = id
	return id
}

// Lookup возвращает строку по ID.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// Count returns how many times the string with this ID was interned.
func (i *Interner) Count(id StringID) int {
	if !i.Has(id) {
		return 0
	}
	return i.hits[id]
}

// Has проверяет, валиден ли ID.
func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len возвращает количество строк, включая NoStringID.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Counts returns interned strings (NoStringID excluded) with their hit counts.
func (i *Interner) Counts() map[string]int {
	out := make(map[string]int, len(i.byID)-1)
	for id := 1; id < len(i.byID); id++ {
		out[i.byID[id]] = i.hits[id]
	}
	return out
}

// Snapshot возвращает копию всех строк.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
