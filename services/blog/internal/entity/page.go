package entity

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Page selects a 1-based page of Limit rows.
type Page struct {
	Number int
	Limit  int
}

func NewPage(number, limit int) Page {
	return Page{Number: number, Limit: limit}.Normalize()
}

func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Range returns the inclusive, zero-based row bounds of the page.
func (p Page) Range() (from, to int) {
	p = p.Normalize()
	from = (p.Number - 1) * p.Limit
	return from, from + p.Limit - 1
}

func (p Page) Offset() int {
	from, _ := p.Range()
	return from
}
