// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package analytics

// String filter match types accepted by the Data API.
const (
	MatchExact    = "EXACT"
	MatchContains = "CONTAINS"
)

// RunReportRequest is the runReport request body.
// Property ("properties/{id}") travels in the URL, not the body.
type RunReportRequest struct {
	Property        string            `json:"-"`
	Dimensions      []Dimension       `json:"dimensions,omitempty"`
	Metrics         []Metric          `json:"metrics,omitempty"`
	DateRanges      []DateRange       `json:"dateRanges,omitempty"`
	DimensionFilter *FilterExpression `json:"dimensionFilter,omitempty"`
	KeepEmptyRows   bool              `json:"keepEmptyRows,omitempty"`
}

// Dimension names a report dimension such as "city".
type Dimension struct {
	Name string `json:"name"`
}

// Metric names a report metric such as "totalUsers".
type Metric struct {
	Name string `json:"name"`
}

// DateRange accepts YYYY-MM-DD or relative dates ("365daysAgo", "today").
type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// FilterExpression is one node of a dimension filter tree.
// Exactly one field is set.
type FilterExpression struct {
	AndGroup      *FilterExpressionList `json:"andGroup,omitempty"`
	OrGroup       *FilterExpressionList `json:"orGroup,omitempty"`
	NotExpression *FilterExpression     `json:"notExpression,omitempty"`
	Filter        *Filter               `json:"filter,omitempty"`
}

// FilterExpressionList groups expressions under AND or OR.
type FilterExpressionList struct {
	Expressions []FilterExpression `json:"expressions"`
}

// Filter applies a single condition to one field.
type Filter struct {
	FieldName    string        `json:"fieldName"`
	StringFilter *StringFilter `json:"stringFilter,omitempty"`
	InListFilter *InListFilter `json:"inListFilter,omitempty"`
}

// StringFilter matches a field against a string.
type StringFilter struct {
	MatchType     string `json:"matchType,omitempty"`
	Value         string `json:"value"`
	CaseSensitive bool   `json:"caseSensitive,omitempty"`
}

// InListFilter matches a field against a set of values.
type InListFilter struct {
	Values        []string `json:"values"`
	CaseSensitive bool     `json:"caseSensitive,omitempty"`
}

// And joins expressions with a logical AND.
func And(exprs ...FilterExpression) *FilterExpression {
	return &FilterExpression{AndGroup: &FilterExpressionList{Expressions: exprs}}
}

// StringContains builds a CONTAINS filter on field.
func StringContains(field, value string) FilterExpression {
	return FilterExpression{Filter: &Filter{
		FieldName:    field,
		StringFilter: &StringFilter{MatchType: MatchContains, Value: value},
	}}
}

// InList builds an in-list filter on field.
func InList(field string, values []string) FilterExpression {
	return FilterExpression{Filter: &Filter{
		FieldName:    field,
		InListFilter: &InListFilter{Values: values},
	}}
}

// RunReportResponse is the runReport response body. Values are strings on the
// wire, metrics included.
type RunReportResponse struct {
	DimensionHeaders []Header `json:"dimensionHeaders"`
	MetricHeaders    []Header `json:"metricHeaders"`
	Rows             []Row    `json:"rows"`
	RowCount         int      `json:"rowCount"`
	Kind             string   `json:"kind"`
}

// Header describes one dimension or metric column.
type Header struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Row holds one result row, in header order.
type Row struct {
	DimensionValues []Value `json:"dimensionValues"`
	MetricValues    []Value `json:"metricValues"`
}

// Value is a single cell.
type Value struct {
	Value string `json:"value"`
}
