package sensors

import (
	"strings"
	"unicode"
)

// Rule rewrites a label when Match accepts it.
type Rule struct {
	Name  string
	Match func(label string) bool
	Apply func(label string) string
}

func replaceRule(name, old, replacement string) Rule {
	return Rule{
		Name:  name,
		Match: func(s string) bool { return strings.Contains(s, old) },
		Apply: func(s string) string { return strings.ReplaceAll(s, old, replacement) },
	}
}

// vendorRules run first and fold every CPU driver onto the "core ..."
// vocabulary the role checks expect.
var vendorRules = []Rule{
	replaceRule("coretemp driver", "coretemp ", "core "),
	replaceRule("core label", "Core ", "core "),
	{
		Name:  "collapse core",
		Match: func(s string) bool { return strings.Contains(s, "core core ") },
		Apply: func(s string) string {
			for strings.Contains(s, "core core ") {
				s = strings.ReplaceAll(s, "core core ", "core ")
			}
			return s
		},
	},
	{
		Name:  "bare package",
		Match: func(s string) bool { return strings.HasPrefix(s, "Package id ") },
		Apply: func(s string) string { return "core " + s },
	},
	{
		Name:  "k10temp control",
		Match: func(s string) bool { return strings.HasPrefix(s, "k10temp Tctl") },
		Apply: func(string) string { return "core Package" },
	},
}

// deviceRules run on everything that is neither the package nor a core.
// Renames come after noise stripping.
var deviceRules = []Rule{
	{
		Name:  "nvme sensor index",
		Match: func(s string) bool { return strings.HasPrefix(s, "nvme Sensor ") },
		Apply: func(s string) string {
			rest := strings.TrimPrefix(s, "nvme Sensor ")
			return strings.TrimLeftFunc(rest, func(r rune) bool {
				return unicode.IsDigit(r) || unicode.IsSpace(r)
			})
		},
	},
	{
		Name:  "nvme composite",
		Match: func(s string) bool { return strings.HasPrefix(s, "nvme Composite ") },
		Apply: func(s string) string { return strings.TrimPrefix(s, "nvme Composite ") },
	},
	replaceRule("ssd noise", "SSD ", ""),
	replaceRule("temp1 noise", " temp1", ""),
	replaceRule("acpi zone", "acpitz", MotherboardName),
	replaceRule("dimm sensor", "spd5118", "RAM"),
	{
		Name:  "wifi",
		Match: func(s string) bool { return strings.Contains(strings.ToLower(s), "wifi") },
		Apply: func(string) string { return "Wi-Fi" },
	},
}

func applyRules(rules []Rule, label string) string {
	for _, rule := range rules {
		if rule.Match(label) {
			label = rule.Apply(label)
		}
	}

	return label
}

// Canonical runs the rule chain over a raw label and reports the
// resulting name and role. Package labels resolve to "CPU" and per-core
// labels to "Core".
func Canonical(label string) (string, Role) {
	name := applyRules(vendorRules, label)

	if strings.Contains(name, "core Package") {
		return PackageName, RolePackage
	}
	if isCoreIndex(name) {
		return CoreName, RoleCore
	}

	name = strings.TrimSpace(applyRules(deviceRules, name))
	if name == "" {
		return strings.TrimSpace(label), RoleDevice
	}

	return name, RoleDevice
}

// isCoreIndex matches exactly "core <digits>".
func isCoreIndex(name string) bool {
	index, ok := strings.CutPrefix(name, "core ")
	if !ok || index == "" {
		return false
	}
	for _, r := range index {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func isComposite(label string) bool {
	return strings.Contains(label, "Composite")
}

// related is the merge test: one name is a prefix of the other. A blank
// name is a prefix of everything, so it only relates to another blank.
func related(a, b string) bool {
	if a == "" || b == "" {
		return a == b
	}

	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}
