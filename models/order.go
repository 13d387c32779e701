package models

import "time"

// Option vocabulary. The values are the exact Korean strings the kiosk UI
// shows and the back-office expects back, so they are stored verbatim.
const (
	TempHot = "HOT"
	TempIce = "ICE"

	// Levels shared by ice amount and coffee shot strength.
	LevelLess   = "적게"
	LevelNormal = "보통"
	LevelMore   = "많이"

	ShotNone  = "없음"
	ShotExtra = "추가"

	SweetnessLess   = "덜 달게"
	SweetnessNormal = "보통"

	// DefaultOrdererName is used when the customer leaves the name blank.
	DefaultOrdererName = "손님"
)

// Options is the known option vocabulary decoded from a cart line's option
// set. Fields irrelevant to the item's category stay empty; the server
// normalizes per category but never rejects unexpected combinations. Keys
// outside this vocabulary are ignored here, not lost: the detail row stores
// the client's serialized option set verbatim alongside the normalized
// columns.
type Options struct {
	Temp       string `json:"temp,omitempty"`
	Ice        string `json:"ice,omitempty"`
	CoffeeShot string `json:"coffeeShot,omitempty"`
	ShotToggle string `json:"shotToggle,omitempty"`
	Sweetness  string `json:"sweetness,omitempty"`
}

// Order is one customer order header. BellNum is reserved for the pager
// integration and always written as NULL for kiosk orders.
type Order struct {
	OrderNo     string      `json:"orderNo" db:"order_no"`
	OrdererName string      `json:"ordererName" db:"orderer_name"`
	BellNum     *int        `json:"bellNum" db:"bell_num"`
	IsDone      bool        `json:"isDone" db:"is_done"`
	InsDate     time.Time   `json:"insDate" db:"ins_date"`
	UpdatedAt   *time.Time  `json:"updatedAt" db:"updated_at"`
	Lines       []OrderLine `json:"lines"`
}

// OrderLine is one detail row of an order. Seq is 1-based and contiguous in
// cart order. The normalized option columns are nil when the category (or the
// chosen temperature) makes them inapplicable; OptionsJSON keeps the raw
// client option set for audit.
type OrderLine struct {
	OrderNo     string       `json:"orderNo" db:"order_no"`
	Seq         int          `json:"seq" db:"order_seq"`
	MenuID      int64        `json:"menuId" db:"menu_id"`
	Category    MenuCategory `json:"category" db:"category"`
	Quantity    int          `json:"quantity" db:"quantity"`
	Temp        *string      `json:"temp" db:"temp"`
	IceAmt      *string      `json:"iceAmt" db:"ice_amt"`
	CoffeeShot  *string      `json:"coffeeShot" db:"coffee_shot"`
	ShotToggle  *string      `json:"shotToggle" db:"shot_toggle"`
	Sweetness   *string      `json:"sweetness" db:"sweetness"`
	OptionsJSON string       `json:"optionsJson" db:"options_json"`
}

// OpenOrderRow is one row of the fulfillment feed: an open order header
// joined with one of its detail lines and the menu catalog. JSON tags match
// the column aliases the back-office page binds against.
type OpenOrderRow struct {
	OrderNo     string       `json:"ORDER_NO"`
	OrdererName string       `json:"ORDERER_NAME"`
	IsDone      bool         `json:"IS_DONE"`
	OrderDate   time.Time    `json:"ORDER_DATE"`
	OrderSeq    int          `json:"ORDER_SEQ"`
	MenuID      int64        `json:"MENU_ID"`
	MenuName    string       `json:"MENU_NAME"`
	Category    MenuCategory `json:"CATEGORY"`
	Quantity    int          `json:"QUANTITY"`
	Temp        *string      `json:"TEMP"`
	IceAmt      *string      `json:"ICE_AMT"`
	CoffeeShot  *string      `json:"COFFEE_SHOT"`
	ShotToggle  *string      `json:"SHOT_TOGGLE"`
	Sweetness   *string      `json:"SWEETNESS"`
	ItemDate    time.Time    `json:"ITEM_DATE"`
}
