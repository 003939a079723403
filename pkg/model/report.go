package model

// SalesReport is the summary returned by the backend report endpoint.
type SalesReport struct {
	TotalSales        float64         `json:"totalSales"`
	TotalProductsSold int             `json:"totalProductsSold"`
	SalesTrend        []TrendPoint    `json:"salesTrend,omitempty"`
	SalesByCategory   []CategoryShare `json:"salesByCategory,omitempty"`
}

// TrendPoint is the revenue for a single day.
type TrendPoint struct {
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
}

// CategoryShare is the revenue attributed to one product.
type CategoryShare struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}
