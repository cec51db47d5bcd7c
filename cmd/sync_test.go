package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/gsteps/internal/db"
)

func runSync(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunSync(&buf, defaultDBPath, []string{"features"}, ".feature"))
	return buf.String()
}

func writeFeature(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll("features", 0o755))
	require.NoError(t, os.WriteFile("features/"+name, []byte(content), 0o644))
}

func countRows(t *testing.T, table string) int {
	t.Helper()
	sqlDB, err := db.Open(defaultDBPath)
	require.NoError(t, err)
	defer sqlDB.Close()

	var n int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

const coffeeFeature = `Feature: Coffee Testing

  Scenario: Buy first Coffee
    Given there is a coffee named "Sublime"
    And the coffee costs 1.50 dollars
    When I give the cashier 2 dollars
    Then I should receive 0.50 in change
`

func TestSync_RegistersNewFile(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "coffee.feature", coffeeFeature)

	out := runSync(t)

	assert.Contains(t, out, "new  features/coffee.feature")
	assert.Contains(t, out, "synced 1 files, 4 steps")
	assert.Equal(t, 1, countRows(t, "files"))
}

func TestSync_StoresNormalizedSteps(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "coffee.feature", coffeeFeature)

	runSync(t)

	sqlDB, err := db.Open(defaultDBPath)
	require.NoError(t, err)
	defer sqlDB.Close()

	var text string
	require.NoError(t, sqlDB.QueryRow(`SELECT text FROM steps WHERE category = 'given' AND text LIKE 'there%'`).Scan(&text))
	assert.Equal(t, `there is a coffee named "input"`, text)
}

func TestSync_ShowsAlreadyTrackedFile(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "coffee.feature", coffeeFeature)

	runSync(t)
	out := runSync(t)

	assert.Contains(t, out, "trk  features/coffee.feature")
	assert.Equal(t, 1, countRows(t, "files"))
	assert.Equal(t, 4, countRows(t, "steps"))
}

func TestSync_SharedStepsCollapse(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "a.feature", "Given a user named \"alice\"\nWhen they log in\n")
	writeFeature(t, "b.feature", "Given a user named \"bob\"\nThen they see 3 items\n")

	out := runSync(t)

	assert.Contains(t, out, "synced 2 files, 3 steps")
	assert.Equal(t, 4, countRows(t, "step_files"))
}

func TestSync_NoFeatureFiles(t *testing.T) {
	inTempDir(t)
	runInit(t)

	out := runSync(t)

	assert.Contains(t, out, "synced 0 files, 0 steps")
}

func TestSync_OtherExtensionsIgnored(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "notes.txt", "Given this is not a feature file\n")
	writeFeature(t, "coffee.feature", coffeeFeature)

	out := runSync(t)

	assert.NotContains(t, out, "notes.txt")
	assert.Equal(t, 1, countRows(t, "files"))
}

func TestSync_EmptyExtensionReadsEveryFile(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "notes.txt", "Given a step in a text file\n")

	var buf bytes.Buffer
	require.NoError(t, RunSync(&buf, defaultDBPath, []string{"features"}, ""))

	assert.Contains(t, buf.String(), "synced 1 files, 1 steps")
}

func TestSync_RemovedFileDropsItsSteps(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "coffee.feature", coffeeFeature)
	writeFeature(t, "tea.feature", "Given a tea\n")
	runSync(t)

	require.NoError(t, os.Remove("features/tea.feature"))
	out := runSync(t)

	assert.Contains(t, out, "1 missing files")
	assert.Contains(t, out, "synced 1 files, 4 steps")
	assert.Equal(t, 1, countRows(t, "files"))
}

func TestSync_EditedFileReplacesSteps(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "coffee.feature", "Given an old step\n")
	runSync(t)

	writeFeature(t, "coffee.feature", "Given a new step\nWhen another\n")
	out := runSync(t)

	assert.Contains(t, out, "synced 1 files, 2 steps")
}

func TestSync_MissingDirectoryIsNotAnError(t *testing.T) {
	inTempDir(t)
	runInit(t)

	var buf bytes.Buffer
	require.NoError(t, RunSync(&buf, defaultDBPath, []string{"nope", "features"}, ".feature"))
	assert.Contains(t, buf.String(), "synced 0 files, 0 steps")
}

func TestSync_RequiresInit(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	err := RunSync(&buf, defaultDBPath, []string{"features"}, ".feature")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gsteps init")
}

func TestSync_UnreadableFileSkipped(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "a.feature", "Given a readable step\n")
	require.NoError(t, os.Symlink("gone.feature", "features/b.feature"))

	out := runSync(t)

	assert.Contains(t, out, "new  features/a.feature")
	assert.Contains(t, out, "skp  features/b.feature")
	assert.Contains(t, out, "synced 1 files, 1 steps")
	assert.Equal(t, 1, countRows(t, "files"))
	assert.Equal(t, 1, countRows(t, "step_files"))
}

func TestSync_FileBecomingUnreadableIsForgotten(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "a.feature", "Given a readable step\n")
	writeFeature(t, "b.feature", "Given a step that goes away\n")
	runSync(t)

	require.NoError(t, os.Remove("features/b.feature"))
	require.NoError(t, os.Symlink("gone.feature", "features/b.feature"))
	out := runSync(t)

	assert.Contains(t, out, "skp  features/b.feature")
	assert.Contains(t, out, "1 missing files")
	assert.Contains(t, out, "synced 1 files, 1 steps")
	assert.Equal(t, 1, countRows(t, "files"))
	assert.Equal(t, 1, countRows(t, "steps"))
}

func TestSync_RequiresDatabaseFile(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	err := RunSync(&buf, "steps.db", []string{"features"}, ".feature")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gsteps init")
	_, statErr := os.Stat("steps.db")
	assert.True(t, os.IsNotExist(statErr))
}
