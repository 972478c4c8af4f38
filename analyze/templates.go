package analyze

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"imghist/config"
	"imghist/histogram"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context       string
	SourceFile    string
	SourcePath    string
	Format        string
	Width         int
	Height        int
	Pixels        int
	BlackAndWhite bool
	Detected      bool
	ID            string
}

func newValues(snap *histogram.Snapshot, name config.TemplateFieldName) Values {
	return Values{
		Context:       string(name),
		SourceFile:    strings.TrimSuffix(filepath.Base(snap.Source), filepath.Ext(snap.Source)),
		SourcePath:    filepath.ToSlash(snap.Source),
		Format:        snap.Format,
		Width:         snap.Width,
		Height:        snap.Height,
		Pixels:        snap.Pixels(),
		BlackAndWhite: snap.BlackAndWhite,
		Detected:      snap.Detected,
		ID:            snap.ID.String(),
	}
}

func expandTemplate(snap *histogram.Snapshot, name config.TemplateFieldName, field string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, newValues(snap, name)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
