package travelers

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// ─── Types ────────────────────────────────────────────────────────────────────

type Category string

const (
	Adult  Category = "adult"
	Child  Category = "child"
	Infant Category = "infant"
)

// Categories lists every category in display order.
var Categories = []Category{Adult, Child, Infant}

// CategoryForAge bands an age: 18+ adult, 2-17 child, under 2 infant.
func CategoryForAge(age int) Category {
	switch {
	case age >= 18:
		return Adult
	case age >= 2:
		return Child
	default:
		return Infant
	}
}

type Traveler struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Category     Category  `json:"category"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Counts is the group composition used for pricing.
type Counts struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

func (c Counts) Total() int {
	return c.Adults + c.Children + c.Infants
}

// InputError is returned by Add for an empty name or a negative age.
type InputError struct {
	Field string
	Msg   string
}

func (e InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// ─── Registry ─────────────────────────────────────────────────────────────────

const firstID = 1

// Registry holds the travelers of one planning session. Ids are issued in
// registration order and never reused until Clear.
type Registry struct {
	mu        sync.Mutex
	travelers []Traveler
	nextID    int
	now       func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{nextID: firstID, now: time.Now}
}

func (r *Registry) Add(name string, age int) (Traveler, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Traveler{}, InputError{Field: "name", Msg: "traveler name is required"}
	}
	if age < 0 {
		return Traveler{}, InputError{Field: "age", Msg: "age cannot be negative"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t := Traveler{
		ID:           r.nextID,
		Name:         name,
		Age:          age,
		Category:     CategoryForAge(age),
		RegisteredAt: r.now(),
	}
	r.travelers = append(r.travelers, t)
	r.nextID++
	return t, nil
}

// List returns a copy of the travelers in registration order.
func (r *Registry) List() []Traveler {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Traveler, len(r.travelers))
	copy(out, r.travelers)
	return out
}

func (r *Registry) Clear() {
	r.mu.Lock()
	r.travelers = nil
	r.nextID = firstID
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.travelers)
}

// CountByCategory always reports all three categories.
func (r *Registry) CountByCategory() map[Category]int {
	out := map[Category]int{Adult: 0, Child: 0, Infant: 0}

	r.mu.Lock()
	for _, t := range r.travelers {
		out[t.Category]++
	}
	r.mu.Unlock()
	return out
}

func (r *Registry) Counts() Counts {
	m := r.CountByCategory()
	return Counts{Adults: m[Adult], Children: m[Child], Infants: m[Infant]}
}
