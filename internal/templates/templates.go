// Package templates provides the embedded default templates.
package templates

import (
	_ "embed"
)

//go:embed report.tmpl
var reportTemplate string

// ReportTemplate returns the default plan report template.
func ReportTemplate() string {
	return reportTemplate
}
