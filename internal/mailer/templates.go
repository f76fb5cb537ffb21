package mailer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// renderTemplate loads a named HTML template from the template directory
// and substitutes {{key}} placeholders. An empty string and an error are
// returned when the template cannot be loaded; callers fall back to their
// inline HTML in that case.
func renderTemplate(dir, name string, vars map[string]string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, name+".html"))
	if err != nil {
		return "", fmt.Errorf("load template %s: %w", name, err)
	}

	body := string(data)
	for key, value := range vars {
		body = strings.ReplaceAll(body, "{{"+key+"}}", value)
	}
	return body, nil
}
