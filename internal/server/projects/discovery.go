// Package projects discovers style projects in the styles directory, checks
// and writes their files and watches them for changes.
package projects

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/iudanet/cartosync/pkg/api"
)

const (
	// MMLExt расширение документа проекта
	MMLExt = ".mml"
	// MCPExt расширение пользовательского состояния
	MCPExt = ".mcp"
	// MSSExt расширение файла стилей
	MSSExt = ".mss"
)

// Discover walks stylesDir and returns every folder's mml documents as
// projects, most recently changed first. Hidden directories are skipped.
func Discover(stylesDir string) ([]api.Project, error) {
	projects := []api.Project{}

	err := filepath.WalkDir(stylesDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != stylesDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(d.Name()) != MMLExt {
			return nil
		}

		project, err := describe(stylesDir, p)
		if err != nil {
			return err
		}
		projects = append(projects, project)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover projects in %s: %w", stylesDir, err)
	}

	slices.SortStableFunc(projects, func(a, b api.Project) int {
		if c := b.LastChange.Compare(a.LastChange); c != 0 {
			return c
		}
		return strings.Compare(a.URL(), b.URL())
	})
	return projects, nil
}

// describe собирает описание проекта по пути к mml файлу
func describe(stylesDir, mmlPath string) (api.Project, error) {
	dir := filepath.Dir(mmlPath)
	base, err := filepath.Rel(stylesDir, dir)
	if err != nil {
		return api.Project{}, err
	}

	info, err := os.Stat(mmlPath)
	if err != nil {
		return api.Project{}, err
	}
	lastChange := info.ModTime()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return api.Project{}, err
	}
	mss := []string{}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != MSSExt {
			continue
		}
		mss = append(mss, e.Name())
		if fi, err := e.Info(); err == nil && fi.ModTime().After(lastChange) {
			lastChange = fi.ModTime()
		}
	}
	slices.Sort(mss)

	name := filepath.Base(mmlPath)
	return api.Project{
		LastChange:   lastChange.UTC(),
		Base:         filepath.ToSlash(base),
		MML:          name,
		MCP:          strings.TrimSuffix(name, MMLExt) + MCPExt,
		AvailableMSS: mss,
	}, nil
}
