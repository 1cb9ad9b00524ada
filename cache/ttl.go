package cache

import "time"

// Suggested TTLs per data category. Dashboard aggregates change with every
// payment, invoice lists with every edit, customer lists rarely.
const (
	TTLDashboard    = 30 * time.Second
	TTLInvoiceList  = time.Minute
	TTLCustomerList = 5 * time.Minute
)
