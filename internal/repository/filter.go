package repository

// List filters. String id fields hold uuid text and are cast in SQL;
// empty string means "no filter".

type TicketFilter struct {
	Q        string
	Status   string
	Priority string
	Category string
	Assignee string
	Limit    int
	Offset   int
	Sort     string // created_at, updated_at, priority
	Order    string // asc|desc
}

type EmployeeFilter struct {
	Q          string
	Department string
	Status     string
	Limit      int
	Offset     int
	Sort       string // created_at, updated_at, name
	Order      string
}

type AssetFilter struct {
	Q        string
	Category string
	Status   string
	Assignee string
	Limit    int
	Offset   int
	Sort     string // created_at, updated_at, asset_tag
	Order    string
}

type MaintenanceFilter struct {
	AssetID string
	Status  string
	Limit   int
	Offset  int
}

type UpgradeFilter struct {
	AssetID string
	Status  string
	Limit   int
	Offset  int
}
