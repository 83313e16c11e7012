package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed *.html
var FS embed.FS

// NewEngine loads the embedded page templates.
func NewEngine() *html.Engine {
	return html.NewFileSystem(http.FS(FS), ".html")
}
