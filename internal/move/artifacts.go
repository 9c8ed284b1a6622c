package move

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const (
	metadataFile = "package-metadata.bcs"
	modulesDir   = "bytecode_modules"
	moduleExt    = ".mv"
)

// ErrArtifactsMissing is returned when the build directory has no compiled package
var ErrArtifactsMissing = errors.New("compiled package not found, compile the Move package first")

// Artifacts is a compiled package ready to publish
type Artifacts struct {
	Metadata []byte
	Modules  [][]byte
	Names    []string // module file names, same order as Modules
}

// LoadArtifacts reads package metadata and module bytecode from buildDir
// (move/build/<package>). Modules are ordered by file name; dependency
// modules under bytecode_modules/dependencies are not included.
func LoadArtifacts(buildDir string) (*Artifacts, error) {
	metadata, err := os.ReadFile(filepath.Join(buildDir, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s missing in %s", ErrArtifactsMissing, metadataFile, buildDir)
		}
		return nil, fmt.Errorf("failed to read package metadata: %w", err)
	}

	entries, err := os.ReadDir(filepath.Join(buildDir, modulesDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s missing in %s", ErrArtifactsMissing, modulesDir, buildDir)
		}
		return nil, fmt.Errorf("failed to list bytecode modules: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != moduleExt {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no %s files in %s", ErrArtifactsMissing, moduleExt, filepath.Join(buildDir, modulesDir))
	}
	sort.Strings(names)

	modules := make([][]byte, 0, len(names))
	for _, name := range names {
		code, err := os.ReadFile(filepath.Join(buildDir, modulesDir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read module %s: %w", name, err)
		}
		modules = append(modules, code)
	}

	return &Artifacts{Metadata: metadata, Modules: modules, Names: names}, nil
}
