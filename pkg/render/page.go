package render

import (
	"fmt"
	"io"

	"github.com/a11ylab/a11ydemo/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML document.
type PageData struct {
	// Body is the root VNode placed inside <body>.
	Body *vdom.VNode

	// Title is the document title.
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// Description fills the description meta tag when set.
	Description string

	// Styles contains inline CSS blocks.
	Styles []string

	// ClientScript is the path to the thin client JavaScript.
	// No script tag is written when empty.
	ClientScript string

	// LivePath is the WebSocket endpoint the client connects to.
	LivePath string
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "<html lang=\"%s\">\n<head>\n", escapeAttr(lang)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "<meta charset=\"utf-8\">\n<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n"); err != nil {
		return err
	}
	if page.Description != "" {
		if _, err := fmt.Fprintf(w, "<meta name=\"description\" content=\"%s\">\n", escapeAttr(page.Description)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "<title>%s</title>\n", escapeHTML(page.Title)); err != nil {
		return err
	}
	for _, css := range page.Styles {
		if _, err := fmt.Fprintf(w, "<style>%s</style>\n", css); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "</head>\n<body>\n"); err != nil {
		return err
	}

	if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}

	if page.ClientScript != "" {
		if _, err := fmt.Fprintf(w, "\n<script src=\"%s\" data-live=\"%s\" defer></script>",
			escapeAttr(page.ClientScript), escapeAttr(page.LivePath)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n</body>\n</html>\n")
	return err
}
