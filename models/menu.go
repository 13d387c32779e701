package models

// MenuCategory matches the category column of the menu table. The kiosk
// renders one tab per category and the option sets differ per category.
type MenuCategory string

const (
	CategoryCoffee    MenuCategory = "COFFEE"
	CategoryNonCoffee MenuCategory = "NON_COFFEE"
	CategoryAde       MenuCategory = "ADE"
	CategoryTea       MenuCategory = "TEA"
)

// Valid reports whether c is one of the known menu categories.
func (c MenuCategory) Valid() bool {
	switch c {
	case CategoryCoffee, CategoryNonCoffee, CategoryAde, CategoryTea:
		return true
	}
	return false
}

// Availability flag values for menu.use_yn.
const (
	UseYes = "Y"
	UseNo  = "N"
)

// MenuItem is one sellable item. Rows are created out-of-band; the only
// in-flow mutation is the use_yn toggle from the back-office panel.
// JSON tags follow the column names the kiosk frontend already consumes.
type MenuItem struct {
	ID          int64        `json:"ID" db:"id"`
	Name        string       `json:"NAME" db:"name"`
	Category    MenuCategory `json:"CATEGORY" db:"category"`
	UseYN       string       `json:"USE_YN" db:"use_yn"`
	ImgURL      *string      `json:"IMG_URL" db:"img_url"`
	InGapImgURL *string      `json:"IN_GAP_IMG_URL" db:"in_gap_img_url"`
}

// BestMenu is one row of the best-sellers report: a menu id and the summed
// ordered quantity across all detail lines.
type BestMenu struct {
	MenuID int64 `json:"MENU_ID" db:"menu_id"`
	Count  int64 `json:"cnt" db:"cnt"`
}
