package models

// FranchiseAdmin is a user administering a franchise.
type FranchiseAdmin struct {
	ID    ID     `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Store is a physical location belonging to a franchise.
type Store struct {
	ID           ID       `json:"id,omitempty"`
	Name         string   `json:"name"`
	TotalRevenue *float64 `json:"totalRevenue,omitempty"`
}

// Franchise groups stores under a set of admins.
type Franchise struct {
	ID     ID               `json:"id,omitempty"`
	Name   string           `json:"name"`
	Admins []FranchiseAdmin `json:"admins,omitempty"`
	Stores []Store          `json:"stores,omitempty"`
}

// FindStore returns the franchise store with the given id.
func (f Franchise) FindStore(id ID) (Store, bool) {
	for _, s := range f.Stores {
		if s.ID == id {
			return s, true
		}
	}
	return Store{}, false
}

// FranchiseList is a page of franchises.
type FranchiseList struct {
	Franchises []Franchise `json:"franchises"`
	More       bool        `json:"more,omitempty"`
}
