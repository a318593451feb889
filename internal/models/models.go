package models

// Member represents a registered customer account
type Member struct {
	MemberID  string `db:"member_id" json:"member_id"`
	MemberPwd string `db:"member_pwd" json:"-"`
	MemberNm  string `db:"member_nm" json:"member_nm"`
}

// Branch represents a fulfillment location
type Branch struct {
	BranID string `db:"bran_id" json:"bran_id"`
	BranNm string `db:"bran_nm" json:"bran_nm"`
}

// PizzaType represents a named pizza on the menu
type PizzaType struct {
	PizzaTypeID string `db:"pizza_type_id" json:"pizza_type_id"`
	PizzaNm     string `db:"pizza_nm" json:"pizza_nm"`
	PizzaCateg  string `db:"pizza_categ" json:"pizza_categ"`
	PizzaImgURL string `db:"pizza_img_url" json:"pizza_img_url"`
}

// Pizza represents a purchasable (type, size) unit in the catalog
type Pizza struct {
	PizzaID     string  `db:"pizza_id" json:"pizza_id"`
	PizzaTypeID string  `db:"pizza_type_id" json:"pizza_type_id"`
	Size        string  `db:"size" json:"size"`
	Price       float64 `db:"price" json:"price"`
}

// MenuItem is the joined projection served by the menu listing
type MenuItem struct {
	PizzaID string  `db:"pizza_id" json:"pizza_id"`
	PizzaNm string  `db:"pizza_nm" json:"pizza_nm"`
	Size    string  `db:"size" json:"size"`
	Price   float64 `db:"price" json:"price"`
}

// Order represents a placed order header. Date and time are kept as
// separate string columns, matching the wire shape of the order listing.
type Order struct {
	OrderID  string `db:"order_id" json:"order_id"`
	MemberID string `db:"member_id" json:"member_id"`
	BranID   string `db:"bran_id" json:"bran_id"`
	Date     string `db:"date" json:"date"`
	Time     string `db:"time" json:"time"`
}

// OrderDetail represents one resolved line item within an order. Rows are
// only ever written together with their owning Order, in one transaction.
type OrderDetail struct {
	OrderDetailID string `db:"order_detail_id" json:"order_detail_id"`
	OrderID       string `db:"order_id" json:"order_id"`
	PizzaID       string `db:"pizza_id" json:"pizza_id"`
	Quantity      int    `db:"quantity" json:"quantity"`
}

// OrderLine is the myorder projection: one row per detail, joined with
// its order header
type OrderLine struct {
	OrderID  string `db:"order_id" json:"order_id"`
	PizzaID  string `db:"pizza_id" json:"pizza_id"`
	Quantity int    `db:"quantity" json:"quantity"`
	Date     string `db:"date" json:"date"`
	Time     string `db:"time" json:"time"`
}
