package stringql

import "sort"

// rowKeys returns sorted row keys, skipping the ones listed in drop.
func rowKeys(row Row, drop []string) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		if !contains(drop, k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
