package pagination

// DefaultWindowSize is the maximum number of page-number buttons shown at once.
const DefaultWindowSize = 5

// Window returns the page numbers to offer as buttons for current within totalPages.
//
// If totalPages fits in size, every page is returned. Otherwise the window is
// centered on current, pinned to [1..size] near the start and to the trailing
// size pages near the end. With size 5 and 12 pages: current 1 gives 1-5,
// current 6 gives 4-8, and current 10 gives 8-12.
func Window(current, totalPages, size int) []int {
	if totalPages <= 0 || size <= 0 {
		return nil
	}
	if size > totalPages {
		size = totalPages
	}

	half := size / 2 //nolint:mnd // Center of the window.
	start := current - half

	switch {
	case totalPages <= size, current <= half+1:
		start = 1
	case current >= totalPages-half:
		start = totalPages - size + 1
	}

	pages := make([]int, size)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}
