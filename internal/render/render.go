package render

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/gofiber/template/html/v2"
	"github.com/khanghh/vbs/internal/common"
	"github.com/valyala/bytebufferpool"
)

//go:embed templates/*.html
var embedFS embed.FS

var (
	engine     *html.Engine
	globalVars map[string]interface{}
)

// Initialize loads page templates from templateDir, or from the embedded
// copies when templateDir is empty.
func Initialize(gVars map[string]interface{}, templateDir string) error {
	var e *html.Engine
	if templateDir != "" {
		info, err := os.Stat(templateDir)
		if err != nil {
			return fmt.Errorf("template directory does not exist: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("template path is not a directory: %s", templateDir)
		}
		e = html.NewFileSystem(http.Dir(templateDir), ".html")
	} else {
		sub, err := fs.Sub(embedFS, "templates")
		if err != nil {
			return err
		}
		e = html.NewFileSystem(http.FS(sub), ".html")
	}
	e.AddFunc("formatDay", common.FormatDay)
	if err := e.Load(); err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	engine = e
	globalVars = gVars
	return nil
}

func RenderHTML(templateName string, vars map[string]interface{}) (string, error) {
	if engine == nil {
		return "", fmt.Errorf("render: templates not initialized")
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	mergedVars := make(map[string]interface{}, len(globalVars)+len(vars))
	for k, v := range globalVars {
		mergedVars[k] = v
	}
	for k, v := range vars {
		mergedVars[k] = v
	}

	templateName = strings.TrimSuffix(templateName, ".html")
	if err := engine.Render(buf, templateName, mergedVars); err != nil {
		return "", err
	}
	return buf.String(), nil
}
