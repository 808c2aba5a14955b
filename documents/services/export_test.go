package services

// Test hooks for the HTML builders; the PDF step needs headless Chrome and
// is exercised only in environments that have it.
var (
	BuildTechnicalReportHTMLForTest  = buildTechnicalReportHTML
	BuildCommercialReportHTMLForTest = buildCommercialReportHTML
)
