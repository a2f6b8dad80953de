package models

import "sort"

// Dataset maps entity name to its merged series.
type Dataset map[string]SeriesRecord

// Names returns the entity names in sorted order.
func (d Dataset) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
