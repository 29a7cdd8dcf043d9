package layout

import (
	"fmt"
	"iter"

	"catalogo-tienda/models"
)

// EventKind identifies a pagination event
type EventKind int

const (
	StartDocument EventKind = iota
	StartCategory
	ProductCell
	PageBreak
	EndCategory
	EndDocument
)

func (k EventKind) String() string {
	switch k {
	case StartDocument:
		return "StartDocument"
	case StartCategory:
		return "StartCategory"
	case ProductCell:
		return "ProductCell"
	case PageBreak:
		return "PageBreak"
	case EndCategory:
		return "EndCategory"
	case EndDocument:
		return "EndDocument"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// PageEvent is one instruction of the pagination stream. Page is the
// zero-based index of the grid page the event belongs to.
type PageEvent struct {
	Kind         EventKind
	Page         int
	Label        string
	Continuation bool
	Product      models.Product
	Row, Col     int
}

// Paginate lays the groups onto a columns x rowsPerPage grid.
//
// Each category starts on a fresh page: when the current page already holds
// cells, a PageBreak precedes the category's StartCategory. When a category
// overflows a page, the break is followed by a continuation StartCategory
// so the header is redrawn. Breaks are only emitted when another cell has
// to be placed, so the stream never ends on a break.
func Paginate(groups []CategoryGroup, columns, rowsPerPage int) (iter.Seq[PageEvent], error) {
	if columns < 1 || rowsPerPage < 1 {
		return nil, fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", models.ErrInvalidSettings, columns, rowsPerPage)
	}
	return func(yield func(PageEvent) bool) {
		page, cellsOnPage := 0, 0
		if !yield(PageEvent{Kind: StartDocument}) {
			return
		}
		for _, group := range groups {
			if len(group.Products) == 0 {
				continue
			}
			if cellsOnPage > 0 {
				page++
				cellsOnPage = 0
				if !yield(PageEvent{Kind: PageBreak, Page: page}) {
					return
				}
			}
			if !yield(PageEvent{Kind: StartCategory, Page: page, Label: group.Label}) {
				return
			}
			row, col := 0, 0
			for _, p := range group.Products {
				if row == rowsPerPage {
					page++
					row, cellsOnPage = 0, 0
					if !yield(PageEvent{Kind: PageBreak, Page: page}) {
						return
					}
					if !yield(PageEvent{Kind: StartCategory, Page: page, Label: group.Label, Continuation: true}) {
						return
					}
				}
				if !yield(PageEvent{Kind: ProductCell, Page: page, Product: p, Row: row, Col: col}) {
					return
				}
				cellsOnPage++
				col++
				if col == columns {
					col = 0
					row++
				}
			}
			if !yield(PageEvent{Kind: EndCategory, Page: page, Label: group.Label}) {
				return
			}
		}
		yield(PageEvent{Kind: EndDocument, Page: page})
	}, nil
}

// Collect materialises an event stream
func Collect(events iter.Seq[PageEvent]) []PageEvent {
	var out []PageEvent
	for ev := range events {
		out = append(out, ev)
	}
	return out
}

// CountPages returns the number of grid pages an event stream spans
func CountPages(events iter.Seq[PageEvent]) int {
	pages, hasCells := 0, false
	for ev := range events {
		if ev.Kind == ProductCell {
			hasCells = true
			pages = max(pages, ev.Page+1)
		}
	}
	if !hasCells {
		return 0
	}
	return pages
}
