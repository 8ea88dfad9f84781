package entity

// Route is a fixed minibus line. Fare is in the smallest currency unit and is
// the per-passenger price captured into tickets at booking time.
type Route struct {
	BaseSimple
	RouteCode     string `db:"route_code"`
	Name          string `db:"name"`
	StartPoint    string `db:"start_point"`
	EndPoint      string `db:"end_point"`
	Fare          int64  `db:"fare"`
	EstimatedTime int    `db:"estimated_time"`
	Color         string `db:"color"`
}
