package models

// RouteDistance is one row of the station distance table.
type RouteDistance struct {
	Source      string
	Destination string
	Distance    float64 // km
}

// Train is one row of the train schedule table.
type Train struct {
	Name        string    `csv:"train_name" json:"train_name"`
	Source      string    `csv:"source" json:"source"`
	Destination string    `csv:"destination" json:"destination"`
	TrainType   TrainType `csv:"train_type" json:"train_type"`
	ClassType   ClassType `csv:"class_type" json:"class_type"`
	AvgSpeed    float64   `csv:"avg_speed" json:"avg_speed"` // km/h
}
