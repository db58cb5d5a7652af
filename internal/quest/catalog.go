package quest

import (
	"fmt"
	"sort"
)

// Catalog is the immutable table of quest definitions. It is populated
// once at startup and injected into the engine; there is no package-level
// registry.
type Catalog struct {
	quests map[string]*Definition
	order  []string
}

// NewCatalog builds a catalog from definitions, validating the catalog
// invariants: globally unique quest IDs and per-quest unique objective
// IDs (base and branch objectives share one namespace).
func NewCatalog(defs []*Definition) (*Catalog, error) {
	quests := make(map[string]*Definition, len(defs))
	for _, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("quest with empty ID (%q)", def.Title)
		}
		if _, dup := quests[def.ID]; dup {
			return nil, fmt.Errorf("duplicate quest ID %q", def.ID)
		}
		if err := validateObjectiveIDs(def); err != nil {
			return nil, err
		}
		quests[def.ID] = def
	}

	order := make([]string, 0, len(quests))
	for id := range quests {
		order = append(order, id)
	}
	sort.Strings(order)

	return &Catalog{quests: quests, order: order}, nil
}

func validateObjectiveIDs(def *Definition) error {
	seen := make(map[string]bool)
	check := func(objectives []Objective, where string) error {
		for _, obj := range objectives {
			if obj.ID == "" {
				return fmt.Errorf("quest %q: objective with empty ID in %s", def.ID, where)
			}
			if obj.Spec == nil {
				return fmt.Errorf("quest %q: objective %q has no type", def.ID, obj.ID)
			}
			if seen[obj.ID] {
				return fmt.Errorf("quest %q: duplicate objective ID %q", def.ID, obj.ID)
			}
			seen[obj.ID] = true
		}
		return nil
	}

	if err := check(def.Objectives, "objectives"); err != nil {
		return err
	}
	branchNames := make([]string, 0, len(def.Branches))
	for name := range def.Branches {
		branchNames = append(branchNames, name)
	}
	sort.Strings(branchNames)
	for _, name := range branchNames {
		br := def.Branches[name]
		if err := check(br.Objectives, "branch "+name); err != nil {
			return err
		}
	}
	return nil
}

// Get returns a quest definition by ID.
func (c *Catalog) Get(id string) (*Definition, bool) {
	def, ok := c.quests[id]
	return def, ok
}

// All returns every definition in stable (ID-sorted) order.
func (c *Catalog) All() []*Definition {
	defs := make([]*Definition, 0, len(c.order))
	for _, id := range c.order {
		defs = append(defs, c.quests[id])
	}
	return defs
}

// Count returns the number of quests in the catalog.
func (c *Catalog) Count() int {
	return len(c.quests)
}
