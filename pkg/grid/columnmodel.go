package grid

// ResolveColumns is C2: a pure transform from the original column list and
// the column slice of State to the laid-out, visible column list.
//
//  1. Drop columns whose key is in HiddenKeys.
//  2. Order by Columns.Order, filtered to visible keys; a visible key not
//     present in Order is appended in its original position order (the
//     stability guarantee).
//  3. width = WidthOverrides[key] ?? original.Width.
//  4. isFrozen = index < FrozenCount.
func ResolveColumns(original []Column, state ColumnsState) ([]ResolvedColumn, error) {
	seen := make(map[string]bool, len(original))
	byKey := make(map[string]Column, len(original))
	for _, c := range original {
		if c.Key == "" {
			return nil, ConfigError{Reason: "column key must not be empty"}
		}
		if seen[c.Key] {
			return nil, DuplicateKeyError{Key: c.Key}
		}
		seen[c.Key] = true
		byKey[c.Key] = c
	}

	visible := make([]string, 0, len(original))
	originalIndex := make(map[string]int, len(original))
	for i, c := range original {
		originalIndex[c.Key] = i
		if !state.HiddenKeys[c.Key] {
			visible = append(visible, c.Key)
		}
	}

	orderPos := make(map[string]int, len(state.Order))
	for i, k := range state.Order {
		orderPos[k] = i
	}

	inOrder := make([]string, 0, len(visible))
	notInOrder := make([]string, 0, len(visible))
	for _, k := range visible {
		if _, ok := orderPos[k]; ok {
			inOrder = append(inOrder, k)
		} else {
			notInOrder = append(notInOrder, k)
		}
	}
	sortByOrderPos(inOrder, orderPos)
	sortByOriginalIndex(notInOrder, originalIndex)

	ordered := append(inOrder, notInOrder...)

	resolved := make([]ResolvedColumn, 0, len(ordered))
	frozenWidthSoFar := 0
	for i, key := range ordered {
		col := byKey[key]
		width := col.Width
		if override, ok := state.WidthOverrides[key]; ok {
			width = override
		}
		isFrozen := i < state.FrozenCount
		rc := ResolvedColumn{
			Column:   col,
			Width:    width,
			IsFrozen: isFrozen,
		}
		if isFrozen {
			rc.LeftOffset = frozenWidthSoFar
			frozenWidthSoFar += width
		}
		resolved = append(resolved, rc)
	}

	return resolved, nil
}

func sortByOrderPos(keys []string, pos map[string]int) {
	insertionSort(keys, func(a, b string) bool { return pos[a] < pos[b] })
}

func sortByOriginalIndex(keys []string, idx map[string]int) {
	insertionSort(keys, func(a, b string) bool { return idx[a] < idx[b] })
}

// insertionSort is a small stable sort so ResolveColumns has no dependency
// on sort.Slice's (stable but reflection-based) machinery for what is
// always a short slice (column counts are in the tens, not thousands).
func insertionSort(keys []string, less func(a, b string) bool) {
	for i := 1; i < len(keys); i++ {
		j := i
		for j > 0 && less(keys[j], keys[j-1]) {
			keys[j], keys[j-1] = keys[j-1], keys[j]
			j--
		}
	}
}
