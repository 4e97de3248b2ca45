package models

// MenuItem is a single pizza on the menu.
type MenuItem struct {
	ID          ID      `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

type Menu []MenuItem

// Find returns the item with the given id.
func (m Menu) Find(id ID) (MenuItem, bool) {
	for _, item := range m {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}
