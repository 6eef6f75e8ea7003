package repository

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   string
	Search       string
	OnlyActive   bool
	WithCategory bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page       int
	PageSize   int
	CustomerID string
	Status     string
}

// AuditLogListFilter 查询审计日志的过滤条件
type AuditLogListFilter struct {
	Page     int
	PageSize int
	Entity   string
	EntityID string
}

// ReviewStats 商品评价统计
type ReviewStats struct {
	Average float64
	Total   int64
}
