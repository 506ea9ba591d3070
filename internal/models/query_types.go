// internal/models/query_types.go
package models

// QueryType groups intents by the handler domain that owns them.
type QueryType string

const (
	QueryTypeCanvass  QueryType = "canvass"
	QueryTypeCompare  QueryType = "compare"
	QueryTypeDistrict QueryType = "district"
	QueryTypePrecinct QueryType = "precinct"
)
