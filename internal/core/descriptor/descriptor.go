// Package descriptor parses the platform's package-description records:
// case-insensitive-key, RFC-822-ish blocks with continuation lines,
// as found in repository index files and installed packages' own
// metadata (§4.B).
package descriptor

import (
	"bufio"
	"strings"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/zerr"
)

// dependencyFields maps a lower-cased field name to the dependency class it
// declares, for the fields that carry dependency lists.
var dependencyFields = map[string]domain.DependencyClass{
	"depends":    domain.ClassDepends,
	"imports":    domain.ClassImports,
	"linkingto":  domain.ClassLinkingTo,
	"suggests":   domain.ClassSuggests,
	"enhances":   domain.ClassEnhances,
}

// Parse decodes a single package-description block into a
// domain.PackageRecord. The block is a sequence of "Key: value" lines
// where a line starting with whitespace continues the previous field's
// value. Keys are matched case-insensitively. A missing trailing newline
// is tolerated.
func Parse(block string) (domain.PackageRecord, error) {
	fields, err := splitFields(block)
	if err != nil {
		return domain.PackageRecord{}, err
	}

	name, ok := fields["package"]
	if !ok || strings.TrimSpace(name) == "" {
		return domain.PackageRecord{}, zerr.With(domain.ErrDescriptorMissingField, "field", "Package")
	}

	versionStr, ok := fields["version"]
	if !ok || strings.TrimSpace(versionStr) == "" {
		return domain.PackageRecord{}, zerr.With(domain.ErrDescriptorMissingField, "field", "Version")
	}
	version, err := domain.ParseVersion(versionStr)
	if err != nil {
		return domain.PackageRecord{}, zerr.With(zerr.Wrap(err, domain.ErrDescriptorParseFailed.Error()), "field", "Version")
	}

	record := domain.PackageRecord{
		Name:    strings.TrimSpace(name),
		Version: version,
	}

	for fieldName, class := range dependencyFields {
		raw, ok := fields[fieldName]
		if !ok {
			continue
		}
		deps, err := parseDependencyList(raw, class)
		if err != nil {
			return domain.PackageRecord{}, zerr.With(err, "field", fieldName)
		}
		record.Dependencies = append(record.Dependencies, deps...)
	}

	if raw, ok := fields["needscompilation"]; ok {
		record.NeedsCompilation = strings.EqualFold(strings.TrimSpace(raw), "yes") || strings.EqualFold(strings.TrimSpace(raw), "true")
	} else if raw, ok := fields["nocompile"]; ok {
		record.NeedsCompilation = !(strings.EqualFold(strings.TrimSpace(raw), "yes") || strings.EqualFold(strings.TrimSpace(raw), "true"))
	} else {
		record.NeedsCompilation = hasLinkingToOrCompiledCode(fields)
	}

	record.Remotes = parseRemotes(fields)

	return record, nil
}

// splitFields collapses continuation lines into their owning field and
// returns a lower-cased-key map of raw field values.
func splitFields(block string) (map[string]string, error) {
	fields := make(map[string]string)
	var currentKey string
	var currentValue strings.Builder

	flush := func() {
		if currentKey == "" {
			return
		}
		fields[currentKey] = strings.TrimSpace(currentValue.String())
		currentValue.Reset()
	}

	scanner := bufio.NewScanner(strings.NewReader(block))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if (line[0] == ' ' || line[0] == '\t') && currentKey != "" {
			currentValue.WriteString(" ")
			currentValue.WriteString(strings.TrimSpace(line))
			continue
		}

		idx := strings.Index(line, ":")
		if idx < 0 {
			return nil, zerr.With(domain.ErrDescriptorParseFailed, "line", line)
		}

		flush()
		currentKey = strings.ToLower(strings.TrimSpace(line[:idx]))
		currentValue.WriteString(strings.TrimSpace(line[idx+1:]))
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrDescriptorParseFailed.Error())
	}

	return fields, nil
}

// parseDependencyList parses a comma-separated dependency field such as
// "dplyr (>= 1.0.0), rlang, methods". Interior whitespace inside an item
// is collapsed and comparator whitespace stripped, per §4.B.
func parseDependencyList(raw string, class domain.DependencyClass) ([]domain.Dependency, error) {
	items := strings.Split(raw, ",")
	deps := make([]domain.Dependency, 0, len(items))

	for _, item := range items {
		item = collapseWhitespace(strings.TrimSpace(item))
		if item == "" {
			continue
		}

		name := item
		constraintStr := ""
		if open := strings.Index(item, "("); open >= 0 {
			closeIdx := strings.Index(item, ")")
			if closeIdx < open {
				return nil, zerr.With(domain.ErrDescriptorParseFailed, "item", item)
			}
			name = strings.TrimSpace(item[:open])
			constraintStr = stripComparatorWhitespace(strings.TrimSpace(item[open+1 : closeIdx]))
		}

		if name == "" {
			return nil, zerr.With(domain.ErrDescriptorParseFailed, "item", item)
		}

		constraint, err := domain.ParseConstraint(constraintStr)
		if err != nil {
			return nil, zerr.With(err, "item", item)
		}

		deps = append(deps, domain.Dependency{
			Name:       name,
			Class:      class,
			Constraint: constraint,
		})
	}

	return deps, nil
}

// collapseWhitespace replaces runs of interior whitespace with a single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripComparatorWhitespace removes whitespace between a comparator and
// its version so ">= 1.0.0" and ">=1.0.0" parse identically.
func stripComparatorWhitespace(s string) string {
	for _, cmp := range []string{">=", "<=", "==", ">", "<"} {
		if strings.HasPrefix(s, cmp) {
			return cmp + strings.TrimSpace(strings.TrimPrefix(s, cmp))
		}
	}
	return s
}

// hasLinkingToOrCompiledCode is the fallback used when a record carries
// neither a "NeedsCompilation" nor a "NoCompile" field: a record with a
// LinkingTo field is taken to need compilation, any other record is not.
func hasLinkingToOrCompiledCode(fields map[string]string) bool {
	_, hasLinkingTo := fields["linkingto"]
	return hasLinkingTo
}

// ParseIndex splits a full repository index file into its constituent
// blank-line-separated blocks and parses each independently. A malformed
// block is skipped and its error collected rather than aborting the
// whole load (§4.B "reports the skip").
func ParseIndex(content string) (records []domain.PackageRecord, skipped []error) {
	for _, block := range splitBlocks(content) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		record, err := Parse(block)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		records = append(records, record)
	}
	return records, skipped
}

// splitBlocks divides index content on blank lines, tolerating a missing
// trailing newline at end of file.
func splitBlocks(content string) []string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	var blocks []string
	var current strings.Builder

	for _, line := range strings.Split(normalized, "\n") {
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				blocks = append(blocks, current.String())
				current.Reset()
			}
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	if current.Len() > 0 {
		blocks = append(blocks, current.String())
	}
	return blocks
}

// remoteField is the lower-cased field name the platform uses for
// per-dependency version-control remote pins, e.g. "Remotes: user/repo".
const remoteField = "remotes"

// parseRemotes decodes the "Remotes" field into RemoteOverride entries.
// Each item has the form "github::branch/subdir::owner/repo@ref" or the
// simpler "owner/repo" form (branch ref implied as "HEAD").
func parseRemotes(fields map[string]string) []domain.RemoteOverride {
	raw, ok := fields[remoteField]
	if !ok {
		return nil
	}

	var overrides []domain.RemoteOverride
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		spec := item
		subdirectory := ""
		if idx := strings.LastIndex(spec, "::"); idx >= 0 {
			subdirectory = spec[:idx]
			spec = spec[idx+2:]
		}

		name := spec
		ref := "HEAD"
		if at := strings.LastIndex(spec, "@"); at >= 0 {
			name = spec[:at]
			ref = spec[at+1:]
		}

		repoParts := strings.SplitN(name, "/", 2)
		depName := name
		if len(repoParts) == 2 {
			depName = repoParts[1]
		}

		overrides = append(overrides, domain.RemoteOverride{
			DependencyName: depName,
			VCS: domain.VCSSource{
				URL:          "https://github.com/" + name,
				RefKind:      domain.VCSRefBranch,
				Ref:          ref,
				Subdirectory: subdirectory,
			},
		})
	}
	return overrides
}
