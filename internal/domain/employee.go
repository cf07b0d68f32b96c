package domain

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/competence-backend/internal/pkg/pointers"
)

// Employee holds competences. It is the inverse side of Competence.EmployeeID.
type Employee struct {
	ID          int64         `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name        *string       `gorm:"column:name" json:"name"`
	FirstName   *string       `gorm:"column:first_name" json:"first_name"`
	Address     *string       `gorm:"column:address" json:"address"`
	Competences []*Competence `gorm:"foreignKey:EmployeeID;references:ID" json:"competences,omitempty"`
}

func (Employee) TableName() string { return "employee" }

func NewEmployee() *Employee { return &Employee{} }

func (e *Employee) WithName(name string) *Employee {
	e.Name = pointers.String(name)
	return e
}

func (e *Employee) WithFirstName(firstName string) *Employee {
	e.FirstName = pointers.String(firstName)
	return e
}

func (e *Employee) WithAddress(address string) *Employee {
	e.Address = pointers.String(address)
	return e
}

func (e *Employee) Equal(o *Employee) bool {
	if e == o {
		return true
	}
	if e == nil || o == nil {
		return false
	}
	return e.ID != 0 && e.ID == o.ID
}

func (e *Employee) String() string {
	if e == nil {
		return "Employee{nil}"
	}
	return fmt.Sprintf("Employee{id=%d, name=%q, first_name=%q, address=%q}",
		e.ID, pointers.Deref(e.Name), pointers.Deref(e.FirstName), pointers.Deref(e.Address))
}

func (e *Employee) AddCompetence(c *Competence) *Employee {
	if e == nil || c == nil {
		return e
	}
	if prev := c.employee; prev != nil && prev != e {
		prev.Competences = removeInstance(prev.Competences, c)
	}
	switch i := indexOfCompetence(e.Competences, c); {
	case i < 0:
		e.Competences = append(e.Competences, c)
	case e.Competences[i] != c:
		// Another instance with the same id is replaced by c.
		replaced := e.Competences[i]
		e.Competences[i] = c
		if replaced.employee == e {
			replaced.linkEmployee(nil)
		}
	}
	c.linkEmployee(e)
	return e
}

func (e *Employee) RemoveCompetence(c *Competence) *Employee {
	if e == nil || c == nil {
		return e
	}
	i := indexOfCompetence(e.Competences, c)
	if i < 0 {
		return e
	}
	removed := e.Competences[i]
	e.Competences = dropCompetence(e.Competences, i)
	if removed.employee == e {
		removed.linkEmployee(nil)
	}
	if c != removed && c.employee == e {
		c.linkEmployee(nil)
	}
	return e
}

func (e *Employee) SetCompetences(competences []*Competence) *Employee {
	if e == nil {
		return e
	}
	old := e.Competences
	e.Competences = nil
	for _, c := range old {
		if c != nil && c.employee == e {
			c.linkEmployee(nil)
		}
	}
	for _, c := range competences {
		e.AddCompetence(c)
	}
	return e
}

func (e *Employee) AfterFind(tx *gorm.DB) error {
	for _, c := range e.Competences {
		if c != nil {
			c.employee = e
		}
	}
	return nil
}

func (e *Employee) idRef() *int64 {
	if e == nil || e.ID == 0 {
		return nil
	}
	return pointers.Int64(e.ID)
}
