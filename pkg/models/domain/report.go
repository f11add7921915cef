package domain

// Report represents a rendered analysis, independent of the output format
type Report struct {
	Title    string
	Catalog  string
	Currency string
	Summary  []ReportDetail
	Sections []ReportSection
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Total   string
	Details []ReportDetail
}

// ReportDetail represents a single labelled figure within a section
type ReportDetail struct {
	Name        string
	Value       string
	Unit        string
	Description string
}
