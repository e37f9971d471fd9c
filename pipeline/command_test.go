package pipeline

import "testing"

func TestDecodeKey(t *testing.T) {

	tests := []struct {
		key      int
		expected Command
	}{
		{'q', CmdQuit},
		{'Q', CmdQuit},
		{27, CmdQuit}, // escape
		{'d', CmdToggleDebug},
		{'D', CmdToggleDebug},
		{'s', CmdScreenshot},
		{'S', CmdScreenshot},
		{'x', CmdNone},
		{-1, CmdNone}, // no key pressed this cycle
		{0, CmdNone},
	}

	for _, tc := range tests {
		if got := DecodeKey(tc.key); got != tc.expected {
			t.Errorf("key %d: expected command %d, got %d", tc.key, tc.expected, got)
		}
	}
}
