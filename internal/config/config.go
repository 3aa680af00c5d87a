// Package config resolves the workspace root the language server was
// opened against and best-effort-parses smithy-build.json for the file
// lists modelcache should treat as workspace members.
package config

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/smithy-lang/smithy-language-server/internal/utils"
)

// BuildFile is a schema-light view of smithy-build.json: unknown fields are
// ignored, matching the lenient spirit of the rest of this system. Only the
// fields modelcache needs to seed its workspace member list are modeled.
type BuildFile struct {
	Version string   `json:"version"`
	Sources []string `json:"sources"`
	Imports []string `json:"imports"`
}

// Workspace is the thin project-config collaborator: it knows the
// workspace root and whatever smithy-build.json says about it. There is no
// dependency download or artifact resolution here.
type Workspace struct {
	Root      string
	BuildFile *BuildFile
}

// NewWorkspace resolves root the same way the teacher's Container config
// resolves WorkspaceRoot: prefer an explicit root, else ".".
func NewWorkspace(root string) *Workspace {
	if root == "" {
		root = "."
	}
	return &Workspace{Root: root}
}

// RootFromURI mirrors the teacher's initialize-time root resolution: URI
// first, falling back to the first workspace folder, falling back to ".".
func RootFromURI(rootURI *string, folders []string) string {
	if rootURI != nil && *rootURI != "" {
		return utils.UriToPath(*rootURI)
	}
	if len(folders) > 0 {
		return utils.UriToPath(folders[0])
	}
	return "."
}

// LoadBuildFile best-effort parses <root>/smithy-build.json. A missing file
// is not an error; a malformed one is logged and ignored, matching the
// warn-and-continue idiom used everywhere else in this server.
func (w *Workspace) LoadBuildFile() {
	logger := commonlog.GetLoggerf("smithy-language-server.config")
	path := filepath.Join(w.Root, "smithy-build.json")

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warningf("could not read smithy-build.json: %v", err)
		}
		return
	}

	var bf BuildFile
	if err := json.Unmarshal(data, &bf); err != nil {
		logger.Warningf("could not parse smithy-build.json: %v", err)
		return
	}

	w.BuildFile = &bf
	logger.Infof("loaded smithy-build.json: %d sources, %d imports", len(bf.Sources), len(bf.Imports))
}

// SourcePaths returns the sources list resolved against the workspace
// root, or nil if no build file was loaded.
func (w *Workspace) SourcePaths() []string {
	if w.BuildFile == nil {
		return nil
	}
	paths := make([]string, 0, len(w.BuildFile.Sources))
	for _, s := range w.BuildFile.Sources {
		if filepath.IsAbs(s) {
			paths = append(paths, s)
			continue
		}
		paths = append(paths, filepath.Join(w.Root, s))
	}
	return paths
}

// WalkSmithyFiles walks every SourcePaths() entry and invokes fn with the
// filesystem path of each ".smithy" file found, following the teacher's
// walkTwigFiles idiom: a silent, best-effort directory walk that skips
// anything it cannot stat.
func (w *Workspace) WalkSmithyFiles(fn func(path string)) {
	for _, base := range w.SourcePaths() {
		info, err := os.Stat(base)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			if strings.HasSuffix(strings.ToLower(base), ".smithy") {
				fn(base)
			}
			continue
		}
		filepath.WalkDir(base, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if strings.HasSuffix(strings.ToLower(d.Name()), ".smithy") {
				fn(path)
			}
			return nil
		})
	}
}

// FileURI converts a source file's filesystem path to the "file://" URI
// form modelcache keys its index on.
func FileURI(path string) string {
	return utils.PathToURI(path)
}
