package pagination

import (
	"html/template"

	"github.com/gin-gonic/gin"
)

// ControlsTemplate renders browsing controls for interactive API clients.
// Since exact page counts are routinely unknown, it only offers previous and
// next, never a numbered page list.
var ControlsTemplate = template.Must(template.New("pagination_controls").Parse(
	`<nav class="pagination">{{ if .previous_url }}<a class="previous" href="{{ .previous_url }}">previous</a>{{ end }}{{ if .next_url }}<a class="next" href="{{ .next_url }}">next</a>{{ end }}</nav>`,
))

// HTMLContext returns the rendering context for ControlsTemplate.
func HTMLContext[T any](c *gin.Context, page *Page[T]) gin.H {
	context := gin.H{
		"previous_url": "",
		"next_url":     "",
	}

	if page.HasPrevious() {
		context["previous_url"] = pageLink(c, page.Number-1)
	}

	if page.HasNext() {
		context["next_url"] = pageLink(c, page.Number+1)
	}

	return context
}
