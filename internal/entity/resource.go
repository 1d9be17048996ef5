// Package entity provides the city's resource pools.
package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Resource names used by the ledger and referenced from the building catalog.
const (
	Money     = "money"
	Food      = "food"
	Military  = "military"
	Knowledge = "knowledge"
)

// ErrResourceNotFound is returned when a lookup names no known resource.
var ErrResourceNotFound = errors.New("resource not found")

// Resource is a single named pool of a resource.
type Resource struct {
	Name   string // Display name (e.g., "Money")
	Symbol string // Display symbol (e.g., "🪙")
	Amount int    // Current amount, never negative
}

// String returns the resource as "Name: amountSymbol".
func (r *Resource) String() string {
	return fmt.Sprintf("%s: %d%s", r.Name, r.Amount, r.Symbol)
}

// Add increases the pool. Non-positive amounts are ignored.
func (r *Resource) Add(amount int) {
	if amount <= 0 {
		return
	}
	r.Amount += amount
}

// Subtract decreases the pool by at most its current amount.
func (r *Resource) Subtract(amount int) {
	if amount <= 0 {
		return
	}
	if amount > r.Amount {
		amount = r.Amount
	}
	r.Amount -= amount
}

// Has returns true if the pool holds at least amount.
func (r *Resource) Has(amount int) bool {
	return r.Amount >= amount
}

// Ledger holds the four resource pools of a running game.
type Ledger struct {
	resources []*Resource
}

// NewLedger creates a ledger with the standard starting amounts.
func NewLedger() *Ledger {
	return &Ledger{
		resources: []*Resource{
			{Name: "Money", Symbol: "🪙", Amount: 50},
			{Name: "Food", Symbol: "🍖", Amount: 0},
			{Name: "Military", Symbol: "🪖", Amount: 0},
			{Name: "Knowledge", Symbol: "🧠", Amount: 0},
		},
	}
}

// Money returns the money pool.
func (l *Ledger) Money() *Resource { return l.resources[0] }

// Food returns the food pool.
func (l *Ledger) Food() *Resource { return l.resources[1] }

// Military returns the military pool.
func (l *Ledger) Military() *Resource { return l.resources[2] }

// Knowledge returns the knowledge pool.
func (l *Ledger) Knowledge() *Resource { return l.resources[3] }

// All returns the pools in display order.
func (l *Ledger) All() []*Resource {
	return l.resources
}

// Names returns the lowercase names of all pools.
func (l *Ledger) Names() []string {
	names := make([]string, len(l.resources))
	for i, r := range l.resources {
		names[i] = strings.ToLower(r.Name)
	}
	return names
}

// FindByName returns the pool with the given name, ignoring case.
func (l *Ledger) FindByName(name string) (*Resource, error) {
	for _, r := range l.resources {
		if strings.EqualFold(r.Name, name) {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrResourceNotFound, name)
}

// Add increases the named pool.
func (l *Ledger) Add(name string, amount int) error {
	r, err := l.FindByName(name)
	if err != nil {
		return err
	}
	r.Add(amount)
	return nil
}

// Subtract decreases the named pool, clamping at zero.
func (l *Ledger) Subtract(name string, amount int) error {
	r, err := l.FindByName(name)
	if err != nil {
		return err
	}
	r.Subtract(amount)
	return nil
}

// String joins all pools for the status bar.
func (l *Ledger) String() string {
	parts := make([]string, len(l.resources))
	for i, r := range l.resources {
		parts[i] = r.String()
	}
	return strings.Join(parts, " | ")
}
