package rules

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ir "github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang"
	"github.com/PhucNguyen204/MatchHooks/pkg/hookcfg"
)

func isMatchDict(p string) bool {
	l := strings.ToLower(p)
	return strings.HasSuffix(l, ".yml") || strings.HasSuffix(l, ".yaml") || strings.HasSuffix(l, ".json")
}

// LoadDirRecursive đọc mọi match dict (yml/yaml/json) dưới root và gộp lại.
// Cùng tên rule ở hai file là lỗi. Kết quả sort theo tên rule.
func LoadDirRecursive(root string) ([]ir.MatchRule, error) {
	var out []ir.MatchRule
	origin := map[string]string{} // rule name -> file
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isMatchDict(p) {
			return nil
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rs, err := hookcfg.LoadMatchDictYAML(b)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		for _, r := range rs {
			if prev, dup := origin[r.Name]; dup {
				return fmt.Errorf("%s: rule %s already defined in %s", p, r.Name, prev)
			}
			origin[r.Name] = p
			out = append(out, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
