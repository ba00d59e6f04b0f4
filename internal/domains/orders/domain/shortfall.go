package domain

// Shortfall reports one product whose requested quantity exceeded the
// quantity available at the target store when the order was checked.
type Shortfall struct {
	ProductID int64
	Available int64
	Requested int64
}
