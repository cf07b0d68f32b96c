package domain

import (
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/yungbote/competence-backend/internal/pkg/pointers"
)

// Competence is the owning side of both links. CategoryID and EmployeeID are
// the persisted foreign keys; category and employee are non-owning
// back-references kept in step by the parents' Add/Remove/Set methods.
type Competence struct {
	ID         int64   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name       *string `gorm:"column:name" json:"name"`
	Level      *int    `gorm:"column:level" json:"level"`
	CategoryID *int64  `gorm:"column:category_id;index" json:"category_id"`
	EmployeeID *int64  `gorm:"column:employee_id;index" json:"employee_id"`

	category *Category
	employee *Employee
}

func (Competence) TableName() string { return "competence" }

func NewCompetence() *Competence { return &Competence{} }

func (c *Competence) WithName(name string) *Competence {
	c.Name = pointers.String(name)
	return c
}

func (c *Competence) WithLevel(level int) *Competence {
	c.Level = pointers.Int(level)
	return c
}

func (c *Competence) Category() *Category { return c.category }
func (c *Competence) Employee() *Employee { return c.employee }

// SetCategory moves c to g through the category side. nil detaches.
func (c *Competence) SetCategory(g *Category) *Competence {
	if g != nil {
		g.AddCompetence(c)
		return c
	}
	if c.category != nil {
		c.category.RemoveCompetence(c)
	}
	c.linkCategory(nil)
	return c
}

// SetEmployee moves c to e through the employee side. nil detaches.
func (c *Competence) SetEmployee(e *Employee) *Competence {
	if e != nil {
		e.AddCompetence(c)
		return c
	}
	if c.employee != nil {
		c.employee.RemoveCompetence(c)
	}
	c.linkEmployee(nil)
	return c
}

func (c *Competence) Equal(o *Competence) bool {
	if c == o {
		return true
	}
	if c == nil || o == nil {
		return false
	}
	return c.ID != 0 && c.ID == o.ID
}

func (c *Competence) String() string {
	if c == nil {
		return "Competence{nil}"
	}
	level := "null"
	if c.Level != nil {
		level = strconv.Itoa(*c.Level)
	}
	return fmt.Sprintf("Competence{id=%d, name=%q, level=%s}", c.ID, pointers.Deref(c.Name), level)
}

// BeforeSave copies identities of parents that were persisted after linking.
func (c *Competence) BeforeSave(tx *gorm.DB) error {
	if ref := c.category.idRef(); ref != nil {
		c.CategoryID = ref
	}
	if ref := c.employee.idRef(); ref != nil {
		c.EmployeeID = ref
	}
	return nil
}

func (c *Competence) linkCategory(g *Category) {
	c.category = g
	c.CategoryID = g.idRef()
}

func (c *Competence) linkEmployee(e *Employee) {
	c.employee = e
	c.EmployeeID = e.idRef()
}

func indexOfCompetence(list []*Competence, c *Competence) int {
	for i, item := range list {
		if item.Equal(c) {
			return i
		}
	}
	return -1
}

func dropCompetence(list []*Competence, i int) []*Competence {
	out := make([]*Competence, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

// removeInstance drops c itself, leaving other instances with the same id.
func removeInstance(list []*Competence, c *Competence) []*Competence {
	for i, item := range list {
		if item == c {
			return dropCompetence(list, i)
		}
	}
	return list
}
