package domain

// Identity represents the signed-in user as exposed to consumers.
// It is either fully populated (signed in) or absent (nil); there is no
// partially-authenticated state.
type Identity struct {
	ID    string
	Email string
	Name  string
	Phone string
}

// CartItem is one line in a user's cart, uniquely keyed by product
// within that user. Price is in the smallest currency unit.
type CartItem struct {
	ID        string
	ProductID string
	Name      string
	Price     int64
	Quantity  int
}

// Subtotal returns the line total for this item.
func (i CartItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Product is one entry in the storefront catalog.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       int64
}

// Session is the remote account service's view of an authenticated session.
type Session struct {
	UserID string
	Email  string
	Name   string
}

// Account represents a remote account record.
type Account struct {
	ID    string
	Email string
	Name  string
}

// Document is one record in the remote document store.
type Document struct {
	ID     string
	Fields map[string]any
}

// StringField returns the named field as a string, or "" when absent
// or of another type.
func (d *Document) StringField(name string) string {
	v, _ := d.Fields[name].(string)
	return v
}
