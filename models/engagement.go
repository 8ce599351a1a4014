package models

import (
	"time"
)

// Engagement captures how actively a customer interacts with the insurer
type Engagement struct {
	CustomerID              string    `db:"customer_id"`
	LastLoginDate           time.Time `db:"last_login_date"`
	LoginFrequency30d       int       `db:"login_frequency_30d"`
	MobileAppUser           bool      `db:"mobile_app_user"`
	EmailOpenRate6m         float64   `db:"email_opens_6m"`
	CustomerServiceCalls12m int       `db:"customer_service_calls_12m"`
	ComplaintsFiled         int       `db:"complaints_filed"`
}
