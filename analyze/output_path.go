package analyze

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"imghist/config"
	"imghist/histogram"
	"imghist/state"
)

// buildOutputPath returns constructed result file path/name (without
// extension) based on various input parameters. It uses either default naming
// scheme or user-defined template and takes into account whether to preserve
// source directory structure on the output. It cleans up path and if
// requested transliterates it. "src" is source path relative to what was
// requested on command line.
func buildOutputPath(snap *histogram.Snapshot, src, dst string, env *state.LocalEnv) string {
	outDir := determineOutputDir(src, dst, env)
	defaultFile := buildDefaultFileName(src, env)

	tmpl := env.Analysis().OutputNameTemplate
	if tmpl == "" {
		return filepath.Join(outDir, defaultFile)
	}

	expandedName := expandOutputNameTemplate(snap, tmpl, env)
	if expandedName == "" {
		// fallback to default name if template expansion failed
		return filepath.Join(outDir, defaultFile)
	}

	return assemblePathWithSubdirs(outDir, expandedName, env)
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(src))
}

func buildDefaultFileName(src string, env *state.LocalEnv) string {
	baseName := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if env.Analysis().FileNameTransliterate {
		baseName = slug.Make(baseName)
	}
	return config.CleanFileName(baseName)
}

func expandOutputNameTemplate(snap *histogram.Snapshot, tmpl string, env *state.LocalEnv) string {
	expandedName, err := expandTemplate(snap, config.OutputNameTemplateFieldName, tmpl)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	return filepath.FromSlash(strings.TrimSpace(expandedName))
}

// assemblePathWithSubdirs takes an expanded template name (which may contain
// path separators for subdirectories) and assembles it into a full output path,
// cleaning and transliterating segments as needed
func assemblePathWithSubdirs(outDir, expandedName string, env *state.LocalEnv) string {
	pathSegments := splitPath(expandedName)
	if len(pathSegments) == 0 {
		return filepath.Join(outDir, config.CleanFileName(""))
	}

	dirParts := make([]string, 0, len(pathSegments)+1)
	dirParts = append(dirParts, outDir)
	for _, segment := range pathSegments {
		dirParts = append(dirParts, cleanPathSegment(segment, env))
	}
	return filepath.Join(dirParts...)
}

// splitPath breaks path into its non empty elements. Elements which would
// step out of output directory are dropped.
func splitPath(path string) []string {
	return slices.DeleteFunc(strings.Split(path, string(os.PathSeparator)), func(s string) bool {
		return s == "" || s == "." || s == ".."
	})
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Analysis().FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
