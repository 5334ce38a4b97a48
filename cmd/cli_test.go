package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestEventCreateRequiresPrivilege(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, createRaidArgs("--actor", "100")...)
	require.NoError(t, err)
	assert.Equal(t, "You do not have permission to manage events.\n", stdout)

	_, err = os.Stat(filepath.Join(home, ".slotbot", "documents", "raid.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestEventCreateThenShow(t *testing.T) {
	home := t.TempDir()
	createRaid(t, home)

	stdout, _, err := executeCLI(t, home, "event", "show", "--event", "raid", "--raw")
	require.NoError(t, err)
	assert.Contains(t, stdout, "**::OPERATION:: Raid night**")
	assert.Contains(t, stdout, "- There are 3 slots with 2 people per slot.")
	assert.Contains(t, stdout, "Slot #3 - <t:1773514800:F>:")

	stdout, _, err = executeCLI(t, home, "event", "show", "--event", "raid")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Raid night")
	assert.Contains(t, stdout, "slots: 3  people per slot: 2  slots per person: 2")
}

func TestSignUpAndLeaveFlow(t *testing.T) {
	home := t.TempDir()
	createRaid(t, home)

	stdout, _, err := executeCLI(t, home, "signup", "--event", "raid", "--slot", "1", "--actor", "100")
	require.NoError(t, err)
	assert.Equal(t, "You have signed up for slot 1.\n", stdout)

	stdout, _, err = executeCLI(t, home, "signup", "--event", "raid", "--slot", "1", "--actor", "100")
	require.NoError(t, err)
	assert.Equal(t, "You are already signed up for this slot.\n", stdout)

	view := showJSON(t, home)
	require.Len(t, view.Slots, 3)
	assert.Equal(t, []string{"100"}, view.Slots[0].Occupants)

	stdout, _, err = executeCLI(t, home, "leave", "--event", "raid", "--slot", "1", "--actor", "100")
	require.NoError(t, err)
	assert.Equal(t, "You have been removed from slot 1.\n", stdout)

	stdout, _, err = executeCLI(t, home, "leave", "--event", "raid", "--slot", "1", "--actor", "100")
	require.NoError(t, err)
	assert.Equal(t, "You are not signed up for this slot.\n", stdout)

	assert.Empty(t, showJSON(t, home).Slots[0].Occupants)
}

func TestSignUpMissingEvent(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "signup", "--event", "gone", "--slot", "1", "--actor", "100")
	require.NoError(t, err)
	assert.Equal(t, "Original message not found.\n", stdout)
}

func TestSignUpRequiresSlotFlag(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "signup", "--event", "raid", "--actor", "100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"slot\" not set")
}

func TestBatchSignUpAndLeaveWithPresetSlots(t *testing.T) {
	home := t.TempDir()
	createRaid(t, home)

	stdout, _, err := executeCLI(t, home, "signup", "batch", "--event", "raid", "--actor", "100", "--slots", "1,3")
	require.NoError(t, err)
	assert.Equal(t, "You have signed up for slots 1, 3.\n", stdout)

	view := showJSON(t, home)
	assert.Equal(t, []string{"100"}, view.Slots[0].Occupants)
	assert.Equal(t, []string{"100"}, view.Slots[2].Occupants)

	stdout, _, err = executeCLI(t, home, "leave", "batch", "--event", "raid", "--actor", "100", "--slots", "3")
	require.NoError(t, err)
	assert.Equal(t, "You have been removed from slots 3.\n", stdout)

	stdout, _, err = executeCLI(t, home, "leave", "batch", "--event", "raid", "--actor", "200")
	require.NoError(t, err)
	assert.Equal(t, "You are not signed up for any slots.\n", stdout)
}

func TestBatchSignUpRejectsInvalidSlotNumbers(t *testing.T) {
	home := t.TempDir()
	createRaid(t, home)

	_, _, err := executeCLI(t, home, "signup", "batch", "--event", "raid", "--actor", "100", "--slots", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid slot number 0")
}

func TestBatchSignUpReportsRefusedSelection(t *testing.T) {
	home := t.TempDir()
	createRaid(t, home)

	stdout, _, err := executeCLI(t, home, "signup", "batch", "--event", "raid", "--actor", "100", "--slots", "1,2,3")
	require.NoError(t, err)
	assert.Equal(t, "You can pick at most 2 slots; nothing was changed.\n", stdout)

	stdout, _, err = executeCLI(t, home, "signup", "batch", "--event", "raid", "--actor", "100", "--slots", "1,1")
	require.NoError(t, err)
	assert.Equal(t, "Each slot can be picked only once; nothing was changed.\n", stdout)

	for _, slot := range showJSON(t, home).Slots {
		assert.Empty(t, slot.Occupants)
	}
}

func TestRoleSetAllowsManagersToCreateEvents(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "role", "set", "--role", "9", "--actor", "100")
	require.NoError(t, err)
	assert.Equal(t, "Only administrators can change the manager role.\n", stdout)

	stdout, _, err = executeCLI(t, home, "role", "set", "--role", "9", "--actor", "100", "--admin")
	require.NoError(t, err)
	assert.Equal(t, "Manager role set to 9.\n", stdout)

	stdout, _, err = executeCLI(t, home, createRaidArgs("--actor", "300", "--role", "9")...)
	require.NoError(t, err)
	assert.Equal(t, "Created event raid.\n", stdout)

	data, err := os.ReadFile(filepath.Join(home, ".slotbot", "settings.toml"))
	require.NoError(t, err)
	assert.Regexp(t, `manager_role_id = ['"]9['"]`, string(data))
}

func TestRoleGrantAllowsSingleUser(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "role", "grant", "--user", "300", "--actor", "100", "--admin")
	require.NoError(t, err)
	assert.Equal(t, "<@!300> can now manage events.\n", stdout)

	stdout, _, err = executeCLI(t, home, createRaidArgs("--actor", "300")...)
	require.NoError(t, err)
	assert.Equal(t, "Created event raid.\n", stdout)
}

func TestEventEditReplacesDocument(t *testing.T) {
	home := t.TempDir()
	createRaid(t, home)

	path := filepath.Join(home, "edited.md")
	require.NoError(t, os.WriteFile(path, []byte("**::OPERATION:: Moved**\n\nSlot #1 - Early:\nSlot #2 - Late:"), 0o600))

	stdout, _, err := executeCLI(t, home, "event", "edit", "--event", "raid", "--file", path, "--actor", "100", "--admin")
	require.NoError(t, err)
	assert.Equal(t, "Updated event raid.\n", stdout)

	view := showJSON(t, home)
	assert.Equal(t, "Moved", view.Title)
	assert.Len(t, view.Slots, 2)
}

func TestEventCreateRejectsInvalidStart(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(),
		"event", "create", "--id", "raid", "--title", "Raid night",
		"--start", "tomorrow", "--slots", "3", "--duration", "30",
		"--actor", "100", "--admin",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid start time \"tomorrow\"")
}

func TestUnsupportedDocumentsBackend(t *testing.T) {
	t.Setenv("SLOTBOT_DOCUMENTS_BACKEND", "carrier-pigeon")

	_, _, err := executeCLI(t, t.TempDir(), "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported documents backend \"carrier-pigeon\"")
}

func TestRedisDocumentsBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("SLOTBOT_DOCUMENTS_BACKEND", "redis")
	t.Setenv("SLOTBOT_REDIS_ADDR", mr.Addr())
	home := t.TempDir()
	createRaid(t, home)

	stdout, _, err := executeCLI(t, home, "signup", "--event", "raid", "--slot", "2", "--actor", "100")
	require.NoError(t, err)
	assert.Equal(t, "You have signed up for slot 2.\n", stdout)

	assert.Contains(t, mr.HGet("slotbot:doc:raid", "text"), "<@!100>")
	assert.Equal(t, "2", mr.HGet("slotbot:doc:raid", "rev"))
}

func createRaidArgs(actor ...string) []string {
	args := []string{
		"event", "create",
		"--id", "raid",
		"--title", "Raid night",
		"--description", "Bring consumables.",
		"--start", "2026-03-14T18:00:00Z",
		"--slots", "3",
		"--people-per-slot", "2",
		"--slots-per-person", "2",
		"--duration", "30",
	}
	return append(args, actor...)
}

func createRaid(t *testing.T, home string) {
	t.Helper()

	stdout, _, err := executeCLI(t, home, createRaidArgs("--actor", "1", "--admin")...)
	require.NoError(t, err)
	require.Equal(t, "Created event raid.\n", stdout)
}

func showJSON(t *testing.T, home string) eventView {
	t.Helper()

	stdout, _, err := executeCLI(t, home, "event", "show", "--event", "raid", "--json")
	require.NoError(t, err)

	var view eventView
	require.NoError(t, json.Unmarshal([]byte(stdout), &view))
	return view
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
