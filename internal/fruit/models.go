package fruit

import "strings"

// Fruit is a single inventory record. Field order matches the JSON written to disk.
type Fruit struct {
	ID          int       `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Category    string    `json:"category" bson:"category"`
	Color       string    `json:"color" bson:"color"`
	Price       float64   `json:"price" bson:"price"`
	Quantity    float64   `json:"quantity" bson:"quantity"`
	Description string    `json:"description" bson:"description"`
	CreatedAt   Timestamp `json:"created_at" bson:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at" bson:"updated_at"`
}

// Document is the whole persisted state: every fruit plus the category names.
type Document struct {
	Fruits     []Fruit  `json:"fruits" bson:"fruits"`
	Categories []string `json:"categories" bson:"categories"`
}

// CategoryCount is a category name with the number of fruits referencing it.
type CategoryCount struct {
	Name       string `json:"name"`
	FruitCount int    `json:"fruit_count"`
}

// StarterCategories is written to a fresh store on first start.
var StarterCategories = []string{"Citrus", "Berries", "Tropical", "Stone Fruits", "Pome Fruits", "Melons"}

// NewDocument returns an empty document with non-nil lists.
func NewDocument() *Document {
	return &Document{Fruits: []Fruit{}, Categories: []string{}}
}

// Normalize replaces nil lists so the document always encodes as
// {"fruits": [], "categories": []}.
func (d *Document) Normalize() {
	if d.Fruits == nil {
		d.Fruits = []Fruit{}
	}
	if d.Categories == nil {
		d.Categories = []string{}
	}
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	out := &Document{
		Fruits:     make([]Fruit, len(d.Fruits)),
		Categories: make([]string, len(d.Categories)),
	}
	copy(out.Fruits, d.Fruits)
	copy(out.Categories, d.Categories)
	return out
}

// HasCategory reports whether name is a known category (exact match).
func (d *Document) HasCategory(name string) bool {
	for _, c := range d.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// FruitIndex returns the position of the fruit with the given id, or -1.
func (d *Document) FruitIndex(id int) int {
	for i := range d.Fruits {
		if d.Fruits[i].ID == id {
			return i
		}
	}
	return -1
}

// NextID returns 1 for an empty list, otherwise one more than the largest id.
func NextID(fruits []Fruit) int {
	highest := 0
	for _, f := range fruits {
		if f.ID > highest {
			highest = f.ID
		}
	}
	return highest + 1
}

// Filter returns the fruits whose name contains search and whose category
// equals category, both compared case-insensitively. Empty arguments match all.
func Filter(fruits []Fruit, search, category string) []Fruit {
	search = strings.ToLower(search)
	category = strings.ToLower(category)
	out := make([]Fruit, 0, len(fruits))
	for _, f := range fruits {
		if search != "" && !strings.Contains(strings.ToLower(f.Name), search) {
			continue
		}
		if category != "" && strings.ToLower(f.Category) != category {
			continue
		}
		out = append(out, f)
	}
	return out
}

// InCategory returns the fruits whose category is exactly name.
func InCategory(fruits []Fruit, name string) []Fruit {
	out := make([]Fruit, 0)
	for _, f := range fruits {
		if f.Category == name {
			out = append(out, f)
		}
	}
	return out
}

// CategoryCounts lists every category in stored order with its fruit count.
// Fruits without a category are not counted.
func CategoryCounts(d *Document) []CategoryCount {
	counts := make(map[string]int)
	for _, f := range d.Fruits {
		if f.Category != "" {
			counts[f.Category]++
		}
	}
	out := make([]CategoryCount, 0, len(d.Categories))
	for _, c := range d.Categories {
		out = append(out, CategoryCount{Name: c, FruitCount: counts[c]})
	}
	return out
}
