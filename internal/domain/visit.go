package domain

import (
	"time"
)

// UnknownAddress is stored when no request source yields a client address
const UnknownAddress = "UNKNOWN"

// MaxAddressLength is the column width of ip_address, wide enough for IPv6 literals
const MaxAddressLength = 45

// VisitRecord represents one row of criminal_ips
type VisitRecord struct {
	ID        int64     `json:"id" db:"id"`
	IPAddress string    `json:"ip_address" db:"ip_address"`
	VisitTime time.Time `json:"visit_time" db:"visit_time"`
}

// VisitStats represents the Redis-backed visit counters
type VisitStats struct {
	TotalVisits int64     `json:"total_visits"`
	DailyVisits int64     `json:"daily_visits"`
	Day         string    `json:"day"`
	LastUpdated time.Time `json:"last_updated"`
}
