package dto

// ImportReport summarizes a bulk spreadsheet import. A failed row never
// aborts its siblings; every failure is collected here instead.
type ImportReport struct {
	Processed int      `json:"processed"`
	Imported  int      `json:"imported"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}
