package rules

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadError names the rule file a rule-load error (§7) came from. A
// LoadError never aborts the rest of the directory load.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// LoadDir walks a directory of one-rule-per-file YAML declarations
// (§6.2), returning every rule that parsed and validated successfully
// plus a LoadError per file that didn't. Rules are returned sorted by ID
// for deterministic downstream iteration order; the rule file layout
// mirrors the teacher corpus's directory-walk-plus-extension-filter idiom.
func LoadDir(dir string) ([]*Rule, []*LoadError) {
	var ruleList []*Rule
	var loadErrors []*LoadError

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			loadErrors = append(loadErrors, &LoadError{Path: path, Err: err})
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yml" && ext != ".yaml" {
			return nil
		}

		r, err := loadFile(path)
		if err != nil {
			loadErrors = append(loadErrors, &LoadError{Path: path, Err: err})
			return nil
		}
		ruleList = append(ruleList, r)
		return nil
	})
	if walkErr != nil {
		loadErrors = append(loadErrors, &LoadError{Path: dir, Err: walkErr})
	}

	sort.Slice(ruleList, func(i, j int) bool { return ruleList[i].ID < ruleList[j].ID })
	return ruleList, loadErrors
}

func loadFile(path string) (*Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Rule
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("malformed rule: %w", err)
	}
	r.SourcePath = path
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}
