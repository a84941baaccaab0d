// Package listview provides the cursor and viewport arithmetic shared by the
// explorer's table body and its option pickers.
//
// Only the rows inside the viewport are rendered, so a page of 100 users in a
// 20-row terminal draws 20 lines. Keyboard navigation covers up/down, j/k,
// pgup/pgdn, and home/end.
package listview
