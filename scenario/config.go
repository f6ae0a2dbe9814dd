package scenario

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed scenarios/*.json
var builtin embed.FS

// Config is a named scenario configuration, sent verbatim to the engine on reset.
type Config struct {
	Name string
	Text string
}

// Load returns one of the scenarios shipped with the module, e.g. "CavalryVsSpearmen".
func Load(name string) (Config, error) {
	data, err := builtin.ReadFile(path.Join("scenarios", name+".json"))
	if err != nil {
		return Config{}, fmt.Errorf("unknown scenario %q: %w", name, err)
	}
	return parse(name, data)
}

// LoadFile reads a scenario configuration from disk. The file name without
// its extension becomes the scenario name.
func LoadFile(file string) (Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read scenario: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return parse(name, data)
}

// Names lists the built-in scenarios.
func Names() []string {
	entries, err := fs.ReadDir(builtin, "scenarios")
	if err != nil {
		panic(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

func parse(name string, data []byte) (Config, error) {
	if !json.Valid(data) {
		return Config{}, fmt.Errorf("scenario %q is not valid JSON", name)
	}
	return Config{Name: name, Text: string(data)}, nil
}
