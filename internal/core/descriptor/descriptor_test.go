package descriptor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rv/internal/core/descriptor"
	"go.trai.ch/rv/internal/core/domain"
)

const dplyrBlock = `Package: dplyr
Version: 1.1.4
Depends: R (>= 3.5.0)
Imports:
    cli (>= 3.4.0), generics, glue (>= 1.3.2),
    lifecycle (>= 1.0.3), magrittr (>= 1.5), methods
LinkingTo: cpp11 (>= 0.4.3)
Suggests: bench, broom, callr
`

func TestParse_FieldsAndClasses(t *testing.T) {
	record, err := descriptor.Parse(dplyrBlock)
	require.NoError(t, err)

	assert.Equal(t, "dplyr", record.Name)
	assert.Equal(t, "1.1.4", record.Version.String())
	assert.True(t, record.NeedsCompilation)

	imports := record.DependenciesOf(domain.ClassImports)
	require.Len(t, imports, 6)
	assert.Equal(t, "cli", imports[0].Name)
	assert.True(t, imports[0].Constraint.Satisfies(domain.MustParseVersion("3.4.0")))

	depends := record.DependenciesOf(domain.ClassDepends)
	require.Len(t, depends, 1)
	assert.Equal(t, "R", depends[0].Name)

	suggests := record.DependenciesOf(domain.ClassSuggests)
	assert.Len(t, suggests, 3)
}

func TestParse_MissingTrailingNewline(t *testing.T) {
	block := "Package: cli\nVersion: 3.6.1"
	record, err := descriptor.Parse(block)
	require.NoError(t, err)
	assert.Equal(t, "cli", record.Name)
}

func TestParse_MissingRequiredField(t *testing.T) {
	_, err := descriptor.Parse("Package: cli\n")
	assert.Error(t, err)
}

func TestParse_Remotes(t *testing.T) {
	block := "Package: gsm.app\nVersion: 2.3.0\nRemotes: someorg/gsm@v2.2.2\n"
	record, err := descriptor.Parse(block)
	require.NoError(t, err)

	override, ok := record.RemoteFor("gsm")
	require.True(t, ok)
	assert.Equal(t, "v2.2.2", override.VCS.Ref)
	assert.Equal(t, "https://github.com/someorg/gsm", override.VCS.URL)
}

func TestParseIndex_SkipsMalformedBlocksButKeepsGoodOnes(t *testing.T) {
	content := dplyrBlock + "\n" + "Package: onlyname\n" + "\n" + "Package: cli\nVersion: 3.6.1\n"

	records, skipped := descriptor.ParseIndex(content)
	require.Len(t, skipped, 1)
	require.Len(t, records, 2)

	names := []string{records[0].Name, records[1].Name}
	assert.Contains(t, names, "dplyr")
	assert.Contains(t, names, "cli")
}
