package entity

import "github.com/shopspring/decimal"

// DashboardMetrics contadores generales.
type DashboardMetrics struct {
	TotalProducts      int `json:"total_products"`
	TotalCustomers     int `json:"total_customers"`
	TotalSuppliers     int `json:"total_suppliers"`
	PendingSalesOrders int `json:"pending_sales_orders"`
	ProductsLowStock   int `json:"products_low_stock"`
}

// DashboardKPIs indicadores del mes en curso.
type DashboardKPIs struct {
	TotalProducts      int             `json:"total_products"`
	LowStockProducts   int             `json:"low_stock_products"`
	CurrentMonthSales  decimal.Decimal `json:"current_month_sales"`
	PendingSalesOrders int             `json:"pending_sales_orders"`
}

// TopSellingProduct un renglón del ranking de más vendidos.
type TopSellingProduct struct {
	ProductName string `json:"product_name"`
	TotalSold   int    `json:"total_sold"`
}

// SalesEvolutionPoint total vendido por día.
type SalesEvolutionPoint struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// ChartData series para los gráficos del dashboard.
type ChartData struct {
	TopSellingProducts []TopSellingProduct   `json:"top_selling_products"`
	SalesEvolution     []SalesEvolutionPoint `json:"sales_evolution"`
}
