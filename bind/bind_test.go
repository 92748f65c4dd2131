package bind

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromStringRoundTrip(t *testing.T) {
	cases := []string{"Mod+Shift+q", "Mod+q", "Ctrl+Alt+Super+F1", "Mod+ScrollUp", "q^"}
	for _, s := range cases {
		b, err := FromString(s)
		require.NoError(t, err, s)
		require.Equal(t, s, b.String(), "round trip for %q", s)
	}
}

func TestFromStringRejectsInvalid(t *testing.T) {
	_, err := FromString("Mod+Shift")
	require.Error(t, err, "no trigger action should be rejected")

	_, err = FromString("q+Super")
	require.Error(t, err, "cannot allow a modifier after a key")
}

func TestRegisterSortsDescendingPopcount(t *testing.T) {
	var table Table

	close, _ := FromString("Mod+Shift+q")
	quit, _ := FromString("Mod+q")

	table.Register(CommandBind{Bind: quit, Run: func() {}})
	table.Register(CommandBind{Bind: close, Run: func() {}})

	require.True(t, table.Sorted())
	require.Equal(t, close, table.binds[0].Bind, "the 2-modifier bind must sort first")
}

func TestTriggerPrefersMoreSpecificBind(t *testing.T) {
	var table Table
	var fired string

	closeBind, _ := FromString("Mod+Shift+q")
	quitBind, _ := FromString("Mod+q")

	table.Register(CommandBind{Bind: quitBind, Run: func() { fired = "quit" }})
	table.Register(CommandBind{Bind: closeBind, Run: func() { fired = "close" }})

	consumed := table.Trigger(ModGesture|ModShift, Action{Key: "q"}, false)
	require.True(t, consumed)
	require.Equal(t, "close", fired, "Super+Shift+Q must fire close, not quit")
}

func TestTriggerConsumesMismatchedReleaseWithoutInvoking(t *testing.T) {
	var table Table
	fired := false

	release, _ := FromString("Mod+q^")
	table.Register(CommandBind{Bind: release, Run: func() { fired = true }})

	consumed := table.Trigger(ModGesture, Action{Key: "q"}, false)
	require.True(t, consumed, "the opposite edge must still be consumed")
	require.False(t, fired, "the thunk must not run for the wrong edge")
}

func TestEraseReplacesExistingBind(t *testing.T) {
	var table Table
	fired := ""

	b, _ := FromString("Mod+q")
	table.Register(CommandBind{Bind: b, Run: func() { fired = "first" }})
	table.Register(CommandBind{Bind: b, Run: func() { fired = "second" }})

	require.Equal(t, 1, table.Len())
	table.Trigger(ModGesture, Action{Key: "q"}, false)
	require.Equal(t, "second", fired)
}
