package handler

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/seized.html
var templateFS embed.FS

// Inline SVG images keep the page self-contained
const (
	sealImage  = `data:image/svg+xml;utf8,<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><circle cx="50" cy="50" r="46" fill="%23c9a227" stroke="white" stroke-width="4"/><circle cx="50" cy="50" r="30" fill="none" stroke="white" stroke-width="3"/></svg>`
	badgeImage = `data:image/svg+xml;utf8,<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><path d="M50 4 L92 20 V50 C92 74 72 92 50 96 C28 92 8 74 8 50 V20 Z" fill="%231f4e8c" stroke="white" stroke-width="4"/></svg>`
)

type pageData struct {
	Authority  string
	Notice     string
	SealImage  template.URL
	BadgeImage template.URL
}

var seizedPageData = pageData{
	Authority:  "by order of the site operator.",
	Notice:     "This domain is no longer serving its original content. Access to this page has been recorded.",
	SealImage:  template.URL(sealImage),
	BadgeImage: template.URL(badgeImage),
}

var seizedTemplate = template.Must(template.ParseFS(templateFS, "templates/seized.html"))

// renderSeizedPage renders the fixed document once; it takes no request data
func renderSeizedPage() []byte {
	var buf bytes.Buffer
	if err := seizedTemplate.Execute(&buf, seizedPageData); err != nil {
		panic("handler: rendering seized page: " + err.Error())
	}
	return buf.Bytes()
}
