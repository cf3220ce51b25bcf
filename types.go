package paygate

// Role defines a public type used by paygate APIs.
//
// Role instances are assigned by the gateway at login or registration and
// are immutable for the lifetime of a session; changing role requires a new
// login.
type Role string

const (
	// RoleAdmin is an exported constant or variable used by the gateway client.
	RoleAdmin Role = "admin"
	// RoleMerchant is an exported constant or variable used by the gateway client.
	RoleMerchant Role = "merchant"
	// RoleUser is an exported constant or variable used by the gateway client.
	RoleUser Role = "user"
)

// Valid reports whether the role is one the gateway issues.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMerchant, RoleUser:
		return true
	}
	return false
}

// Session is the client's record of who is logged in: identity, role, and
// the current short-lived access credential. APIKey is present only for
// merchant accounts and is passed through unchanged, never interpreted.
//
// The long-lived renewal credential is NOT part of the session; it lives in
// the transport's cookie jar and the SDK never reads it.
type Session struct {
	Email  string
	Name   string
	Role   Role
	Access string
	APIKey string
}

// LoginResult is the normalized outcome of [Client.Login]. Login never
// returns an error: callers branch on Success, with Message and Description
// sourced from the gateway's response envelope (or from the transport
// failure when the call never reached the gateway).
type LoginResult struct {
	Success     bool
	Message     string
	Description string
	Session     *Session
}

// CardDetails carries raw card input for a payment capture. The SDK does
// not validate card numbers; the gateway does.
type CardDetails struct {
	Number string `json:"card_number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

// PaymentRequest identifies the order to capture and the card to charge.
type PaymentRequest struct {
	OrderID string      `json:"order_id"`
	Card    CardDetails `json:"card_details"`
}

// Order is a payment order as returned by the gateway. Amount is the
// gateway's decimal string representation.
type Order struct {
	OrderID   string `json:"order_id"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// Payment is a captured, pending, or failed payment attempt against an
// order. Order is the gateway's numeric order reference.
type Payment struct {
	PaymentID string `json:"payment_id"`
	Order     int64  `json:"order"`
	Amount    string `json:"amount"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// RefundResult reports the terminal status of a refund request.
type RefundResult struct {
	Status string `json:"status"`
}

// DailyRevenue is one day of captured revenue in a stats time series.
type DailyRevenue struct {
	Date    string `json:"date"`
	Revenue string `json:"revenue"`
	Count   int    `json:"count"`
}

// DailyCount is one day of order volume in a stats time series.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// StatusCount is one slice of the payment status breakdown.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// PeriodSummary carries the previous reporting period's headline numbers,
// used by dashboards for trend arrows.
type PeriodSummary struct {
	TotalRevenue   string  `json:"total_revenue"`
	TotalOrders    int     `json:"total_orders"`
	ConversionRate float64 `json:"conversion_rate"`
	AvgOrderValue  string  `json:"avg_order_value"`
}

// MerchantStats is the merchant dashboard payload: headline counters for
// the selected period, the previous period for trends, and chart series.
type MerchantStats struct {
	TotalOrders        int            `json:"total_orders"`
	TotalRevenue       string         `json:"total_revenue"`
	SuccessfulPayments int            `json:"successful_payments"`
	SuccessfulRefunds  int            `json:"successful_refunds"`
	CanceledPayments   int            `json:"canceled_payments"`
	AuthorizedPayments int            `json:"authorized_payments"`
	ConversionRate     float64        `json:"conversion_rate"`
	AvgOrderValue      string         `json:"avg_order_value"`
	PreviousPeriod     PeriodSummary  `json:"previous_period"`
	DailyRevenue       []DailyRevenue `json:"daily_revenue"`
	DailyOrders        []DailyCount   `json:"daily_orders"`
	StatusBreakdown    []StatusCount  `json:"payment_status_breakdown"`
}

// AdminStats is the platform-wide dashboard payload available to admin
// accounts.
type AdminStats struct {
	TotalMerchants     int            `json:"total_merchants"`
	TotalAdmins        int            `json:"total_admins"`
	TotalCommission    string         `json:"total_commission"`
	TotalOrders        int            `json:"total_orders"`
	SuccessfulPayments int            `json:"total_successful_payments"`
	CapturedPayments   int            `json:"total_captured_payments"`
	SuccessfulRefunds  int            `json:"total_successful_refunds"`
	PreviousPeriod     PeriodSummary  `json:"previous_period"`
	DailyRevenue       []DailyRevenue `json:"daily_revenue"`
	StatusBreakdown    []StatusCount  `json:"payment_status_breakdown"`
}
