package main

import (
	"testing"
)

func TestRewriteCmd_FlagsExist(t *testing.T) {
	cmd := rewriteCmd()

	expectedFlags := []string{"format", "json", "write", "out-dir", "dry-run", "recursive", "include", "exclude", "config", "no-progress", "keep-aliases", "keep-constructor-access"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestRewriteCmd_ShortFlags(t *testing.T) {
	cmd := rewriteCmd()

	shortFlags := map[string]string{
		"f": "format",
		"w": "write",
		"r": "recursive",
		"c": "config",
	}

	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if flag == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestRewriteCmd_DefaultValues(t *testing.T) {
	cmd := rewriteCmd()

	formatFlag := cmd.Flags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("format flag not found")
	}
	if formatFlag.DefValue != "text" {
		t.Errorf("Expected default format to be 'text', got '%s'", formatFlag.DefValue)
	}

	recursiveFlag := cmd.Flags().Lookup("recursive")
	if recursiveFlag == nil {
		t.Fatal("recursive flag not found")
	}
	if recursiveFlag.DefValue != "true" {
		t.Errorf("Expected recursive to default to true, got '%s'", recursiveFlag.DefValue)
	}
}

func TestRewriteCmd_NoPathsError(t *testing.T) {
	cmd := rewriteCmd()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	if err == nil {
		t.Error("Expected error when no paths specified")
	}
}

func TestCheckCmd_FlagsExist(t *testing.T) {
	cmd := checkCmd()

	expectedFlags := []string{"json", "quiet", "recursive", "exclude", "config"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestCheckCmd_ShortFlags(t *testing.T) {
	cmd := checkCmd()

	shortFlags := map[string]string{
		"q": "quiet",
		"r": "recursive",
		"c": "config",
	}

	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if flag == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestCheckCmd_NoPathsError(t *testing.T) {
	cmd := checkCmd()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	if err == nil {
		t.Error("Expected error when no paths specified")
	}
}

func TestCheckExitError_Error(t *testing.T) {
	err := &CheckExitError{Code: 1, Message: "test error"}
	if err.Error() != "test error" {
		t.Errorf("Error() should return message, got '%s'", err.Error())
	}
}

func TestVersionCmd_FlagsExist(t *testing.T) {
	cmd := versionCmd()

	if cmd == nil {
		t.Fatal("versionCmd should not return nil")
	}

	verboseFlag := cmd.Flags().Lookup("verbose")
	if verboseFlag == nil {
		t.Error("Missing expected flag: --verbose")
	}
}

func TestVersionCmd_ShortFlag(t *testing.T) {
	cmd := versionCmd()

	flag := cmd.Flags().ShorthandLookup("v")
	if flag == nil {
		t.Error("Missing short flag -v for --verbose")
	}
}
