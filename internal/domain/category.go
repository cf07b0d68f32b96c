package domain

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/competence-backend/internal/pkg/pointers"
)

// Category groups competences. It is the inverse side of Competence.CategoryID.
type Category struct {
	ID          int64         `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name        *string       `gorm:"column:name" json:"name"`
	Competences []*Competence `gorm:"foreignKey:CategoryID;references:ID" json:"competences,omitempty"`
}

func (Category) TableName() string { return "category" }

func NewCategory() *Category { return &Category{} }

func (g *Category) WithName(name string) *Category {
	g.Name = pointers.String(name)
	return g
}

// Equal compares by identity. A transient category only equals itself.
func (g *Category) Equal(o *Category) bool {
	if g == o {
		return true
	}
	if g == nil || o == nil {
		return false
	}
	return g.ID != 0 && g.ID == o.ID
}

func (g *Category) String() string {
	if g == nil {
		return "Category{nil}"
	}
	return fmt.Sprintf("Category{id=%d, name=%q}", g.ID, pointers.Deref(g.Name))
}

// AddCompetence links c to g, detaching it from any other category first.
func (g *Category) AddCompetence(c *Competence) *Category {
	if g == nil || c == nil {
		return g
	}
	if prev := c.category; prev != nil && prev != g {
		prev.Competences = removeInstance(prev.Competences, c)
	}
	switch i := indexOfCompetence(g.Competences, c); {
	case i < 0:
		g.Competences = append(g.Competences, c)
	case g.Competences[i] != c:
		// Another instance with the same id is replaced by c.
		replaced := g.Competences[i]
		g.Competences[i] = c
		if replaced.category == g {
			replaced.linkCategory(nil)
		}
	}
	c.linkCategory(g)
	return g
}

// RemoveCompetence unlinks c. It is a no-op when c is not in the collection.
func (g *Category) RemoveCompetence(c *Competence) *Category {
	if g == nil || c == nil {
		return g
	}
	i := indexOfCompetence(g.Competences, c)
	if i < 0 {
		return g
	}
	removed := g.Competences[i]
	g.Competences = dropCompetence(g.Competences, i)
	if removed.category == g {
		removed.linkCategory(nil)
	}
	if c != removed && c.category == g {
		c.linkCategory(nil)
	}
	return g
}

// SetCompetences replaces the collection. Every previous member loses its
// back-reference before the new members gain theirs. nil means none.
func (g *Category) SetCompetences(competences []*Competence) *Category {
	if g == nil {
		return g
	}
	old := g.Competences
	g.Competences = nil
	for _, c := range old {
		if c != nil && c.category == g {
			c.linkCategory(nil)
		}
	}
	for _, c := range competences {
		g.AddCompetence(c)
	}
	return g
}

// AfterFind restores back-references on preloaded competences.
func (g *Category) AfterFind(tx *gorm.DB) error {
	for _, c := range g.Competences {
		if c != nil {
			c.category = g
		}
	}
	return nil
}

func (g *Category) idRef() *int64 {
	if g == nil || g.ID == 0 {
		return nil
	}
	return pointers.Int64(g.ID)
}
