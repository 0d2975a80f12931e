// config.go - everdiff.config.yaml: a list of PrePatches applied before
// comparison (§6, §7).
//
// Grounded in original_source/src/config.rs: the format is intentionally
// forgiving — any parse failure demotes to "no prepatches" rather than a
// fatal error, since a malformed or absent config file should never block
// a comparison.
package diffyml

import "gopkg.in/yaml.v3"

type rawConfig struct {
	Prepatches []rawPrepatch `yaml:"prepatches"`
}

type rawPrepatch struct {
	Name         string    `yaml:"name"`
	DocumentLike yaml.Node `yaml:"documentLike"`
	Patches      []rawOp   `yaml:"patches"`
}

type rawOp struct {
	Op    string    `yaml:"op"`
	Path  string    `yaml:"path"`
	Value yaml.Node `yaml:"value"`
}

// LoadConfig parses raw config YAML into a list of PrePatches. Malformed
// YAML yields an empty list rather than an error (§7). A prepatch without a
// "patches" list is kept with no ops; one without "documentLike" is kept
// with a nil Match, which matches every document.
func LoadConfig(raw []byte) []PrePatch {
	var cfg rawConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil
	}

	patches := make([]PrePatch, 0, len(cfg.Prepatches))
	for _, rp := range cfg.Prepatches {
		ops := make([]PatchOp, 0, len(rp.Patches))
		for _, ro := range rp.Patches {
			ops = append(ops, PatchOp{Op: ro.Op, Path: ro.Path, Value: nodeToInterface(&ro.Value)})
		}
		patches = append(patches, PrePatch{Match: nodeToInterface(&rp.DocumentLike), Ops: ops})
	}
	return patches
}
