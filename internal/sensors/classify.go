package sensors

import (
	"slices"
	"sort"
)

// Classify groups the temperature readings. Other kinds are ignored.
//
// Merging scans every group found so far for each reading, which is
// quadratic in the number of groups. Sensor counts are in the tens and the
// merge test is prefix containment, not equality, so a map cannot replace
// the scan without changing which names merge.
func Classify(readings []Reading) Classification {
	var c Classification

	for _, r := range readings {
		if r.Kind != Temperature {
			continue
		}

		value := sanitize(r.Value)
		name, role := Canonical(r.Label)

		switch role {
		case RolePackage:
			c.CPU = value
			c.HasCPU = true
		case RoleCore:
			c.Cores = append(c.Cores, value)
		default:
			c.Groups = merge(c.Groups, name, value, isComposite(r.Label))
		}
	}

	sortGroups(c.Groups)

	return c
}

func merge(groups []Group, name string, value float64, composite bool) []Group {
	for i := range groups {
		if related(groups[i].Name, name) {
			groups[i].Values = append(groups[i].Values, value)
			groups[i].composite = groups[i].composite || composite
			return groups
		}
	}

	return append(groups, Group{
		Name:      name,
		Values:    []float64{value},
		composite: composite,
	})
}

// sortGroups puts composite groups first, then orders by descending max.
// The sort is stable so ties keep discovery order.
func sortGroups(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.composite != b.composite {
			return a.composite
		}
		return a.Max() > b.Max()
	})
}

// InventoryNames lists the detected devices for the static summary:
// canonical names without the package, cores, the motherboard zone or
// blank labels, prefix-deduplicated and sorted.
func InventoryNames(readings []Reading) []string {
	var names []string

	for _, r := range readings {
		if r.Kind != Temperature {
			continue
		}

		name, role := Canonical(r.Label)
		if role != RoleDevice || name == "" || name == MotherboardName {
			continue
		}

		if !slices.ContainsFunc(names, func(existing string) bool {
			return related(existing, name)
		}) {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return names
}
