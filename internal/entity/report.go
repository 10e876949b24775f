package entity

// Report is the structured outcome of the on-page SEO checks for one URL.
// Title and MetaDescription are nil when the corresponding tag is absent or
// empty; field presence is fixed by the type, not by check outcome.
type Report struct {
	Title            *string  `json:"title"`
	MetaDescription  *string  `json:"meta_description"`
	HasH1            bool     `json:"has_h1"`
	ImageCount       int      `json:"image_count"`
	ImagesMissingAlt int      `json:"images_missing_alt"`
	WordCount        int      `json:"word_count"`
	Recommendations  []string `json:"recommendations"`
}

// Page is a fetched HTTP document: the response status and raw body.
type Page struct {
	URL        string `json:"url"`
	StatusCode int    `json:"status_code"`
	Body       []byte `json:"body"`
}
