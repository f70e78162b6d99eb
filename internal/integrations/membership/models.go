package membership

// Discount модель скидки участника программы лояльности из MembershipService
type Discount struct {
	UserID             int64   `json:"userId"`
	DiscountPercentage float64 `json:"discountPercentage"` // 0..100
}

// ErrorResponse модель ошибки от MembershipService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
