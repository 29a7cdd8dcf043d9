package layout

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"catalogo-tienda/models"
)

// DefaultPreferredCategories is the group order used when settings carry none
var DefaultPreferredCategories = []string{"Cables", "Headphones", "Chargers", "Speakers", "Accessories"}

// CategoryGroup is one entry of the ordered category mapping
type CategoryGroup struct {
	Label    string
	Products []models.Product
}

// Grouper partitions products into ordered category groups
type Grouper struct {
	Locale language.Tag
}

// NewGrouper returns a grouper comparing names with the given locale rules
func NewGrouper(locale language.Tag) *Grouper {
	return &Grouper{Locale: locale}
}

// Group returns the products partitioned by category. With grouping
// disabled there is a single unlabeled group. Groups follow the preferred
// list first, then the remaining labels in collation order.
func (g *Grouper) Group(products []models.Product, settings models.CatalogSettings) []CategoryGroup {
	if len(products) == 0 {
		return nil
	}
	// collate.Collator is not safe for concurrent use; one per call.
	col := collate.New(g.Locale, collate.IgnoreCase)

	if !settings.GroupByCategory {
		items := append([]models.Product(nil), products...)
		if settings.SortByName {
			sort.SliceStable(items, func(i, j int) bool {
				if c := col.CompareString(items[i].CategoryLabel(), items[j].CategoryLabel()); c != 0 {
					return c < 0
				}
				return col.CompareString(items[i].Name, items[j].Name) < 0
			})
		}
		return []CategoryGroup{{Products: items}}
	}

	index := make(map[string]int)
	var groups []CategoryGroup
	for _, p := range products {
		label := p.CategoryLabel()
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, CategoryGroup{Label: label})
		}
		groups[i].Products = append(groups[i].Products, p)
	}

	preferred := settings.PreferredCategories
	if len(preferred) == 0 {
		preferred = DefaultPreferredCategories
	}
	rank := make(map[string]int, len(preferred))
	for i, name := range preferred {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := rank[key]; !dup {
			rank[key] = i
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		ri, iPreferred := rank[strings.ToLower(groups[i].Label)]
		rj, jPreferred := rank[strings.ToLower(groups[j].Label)]
		switch {
		case iPreferred && jPreferred:
			return ri < rj
		case iPreferred != jPreferred:
			return iPreferred
		default:
			return col.CompareString(groups[i].Label, groups[j].Label) < 0
		}
	})

	if settings.SortByName {
		for i := range groups {
			items := groups[i].Products
			sort.SliceStable(items, func(a, b int) bool {
				return col.CompareString(items[a].Name, items[b].Name) < 0
			})
		}
	}
	return groups
}

// CountProducts returns the number of products across all groups
func CountProducts(groups []CategoryGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Products)
	}
	return n
}
