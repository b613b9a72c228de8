package news

// Page slices a sorted item list for incremental consumption. The cursor
// is an offset into the list; the returned next cursor is cursor+size, or
// nil once the cursor points past the end. Callers stop requesting pages
// when they receive an empty page with a nil next cursor.
func Page(items []Item, cursor, size int) ([]Item, *int) {
	if cursor < 0 {
		cursor = 0
	}
	if size <= 0 || cursor >= len(items) {
		return []Item{}, nil
	}

	end := cursor + size
	if end > len(items) {
		end = len(items)
	}

	page := make([]Item, end-cursor)
	copy(page, items[cursor:end])

	next := cursor + size
	return page, &next
}
