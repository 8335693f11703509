package pagination

// Schema returns the OpenAPI description of the response envelope for API
// documentation. The results schema of the endpoint is spliced in unchanged,
// the example links are built from the configured example URL.
func (o Options) Schema(results map[string]any) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"current_page": map[string]any{
				"type":    "integer",
				"example": 2,
			},
			"next": map[string]any{
				"type":     "string",
				"nullable": true,
				"format":   "uri",
				"example":  o.ExampleURL + "&page=3",
			},
			"previous": map[string]any{
				"type":     "string",
				"nullable": true,
				"format":   "uri",
				"example":  o.ExampleURL + "&page=1",
			},
			"results": results,
		},
	}
}
