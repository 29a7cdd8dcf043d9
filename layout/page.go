package layout

import (
	"iter"

	"catalogo-tienda/models"
)

// BlockKind is the type of a draw directive
type BlockKind int

const (
	BlockCover BlockKind = iota
	BlockCategoryHeader
	BlockProductCard
	BlockContact
)

// Block is a single draw directive placed on a page
type Block struct {
	Kind         BlockKind
	Rect         Rect
	Label        string
	Continuation bool
	Product      models.Product
	Row, Col     int
}

// PageKind distinguishes the page templates
type PageKind int

const (
	CoverPage PageKind = iota
	GridPage
	ContactPage
)

// Page is the set of directives for one physical page
type Page struct {
	Kind   PageKind
	Number int
	Width  float64
	Height float64
	Margin float64
	Blocks []Block
}

// Category returns the label of the page's category header, if any
func (p Page) Category() (string, bool) {
	for _, b := range p.Blocks {
		if b.Kind == BlockCategoryHeader {
			return b.Label, true
		}
	}
	return "", false
}

// Cards returns the number of product cards on the page
func (p Page) Cards() int {
	n := 0
	for _, b := range p.Blocks {
		if b.Kind == BlockProductCard {
			n++
		}
	}
	return n
}

func (g Geometry) newPage(kind PageKind, number int) Page {
	return Page{Kind: kind, Number: number, Width: g.PageWidth, Height: g.PageHeight, Margin: g.Margin}
}

// NewCoverPage returns the cover page, numbered 1
func (g Geometry) NewCoverPage() Page {
	p := g.newPage(CoverPage, 1)
	p.Blocks = []Block{{Kind: BlockCover, Rect: g.PageRect()}}
	return p
}

// NewContactPage returns the closing contact page
func (g Geometry) NewContactPage(number int) Page {
	p := g.newPage(ContactPage, number)
	p.Blocks = []Block{{Kind: BlockContact, Rect: g.ContentRect()}}
	return p
}

// Pages folds a pagination stream into grid pages. firstNumber is the page
// number given to the first grid page (the cover usually takes 1).
func (g Geometry) Pages(events iter.Seq[PageEvent], firstNumber int) iter.Seq[Page] {
	return func(yield func(Page) bool) {
		var current *Page
		flush := func() bool {
			if current == nil || len(current.Blocks) == 0 {
				return true
			}
			p := *current
			current = nil
			return yield(p)
		}
		number := firstNumber
		for ev := range events {
			switch ev.Kind {
			case StartCategory:
				if current == nil {
					p := g.newPage(GridPage, number)
					number++
					current = &p
				}
				current.Blocks = append(current.Blocks, Block{
					Kind:         BlockCategoryHeader,
					Rect:         g.CategoryBarRect(),
					Label:        ev.Label,
					Continuation: ev.Continuation,
				})
			case ProductCell:
				if current == nil {
					p := g.newPage(GridPage, number)
					number++
					current = &p
				}
				current.Blocks = append(current.Blocks, Block{
					Kind:    BlockProductCard,
					Rect:    g.CellRect(ev.Row, ev.Col),
					Product: ev.Product,
					Row:     ev.Row,
					Col:     ev.Col,
				})
			case PageBreak, EndDocument:
				if !flush() {
					return
				}
			}
		}
		flush()
	}
}
