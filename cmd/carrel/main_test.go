package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[workspace]
default_name = "Default"

[logging]
format = "json"
level = "error"
`, filepath.Join(base, "data"), filepath.Join(base, "logs"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestWorkspaceLifecycle(t *testing.T) {
	env := setupCLITestEnv(t)

	// First invocation migrates and creates the default workspace.
	out, _, err := runCLI(t, env, "workspace", "list")
	if err != nil {
		t.Fatalf("workspace list: %v", err)
	}
	requireContains(t, out, "Default")

	out, _, err = runCLI(t, env, "workspace", "create", "Thesis")
	if err != nil {
		t.Fatalf("workspace create: %v", err)
	}
	requireContains(t, out, "Created workspace Thesis")

	out, _, err = runCLI(t, env, "workspace", "list")
	if err != nil {
		t.Fatalf("workspace list: %v", err)
	}
	requireContains(t, out, "Thesis")

	// The new workspace became active; switch back to the default.
	out, _, err = runCLI(t, env, "workspace", "use", "default")
	if err != nil {
		t.Fatalf("workspace use: %v", err)
	}
	requireContains(t, out, "Now using workspace Default")

	if _, _, err := runCLI(t, env, "workspace", "use", "nope"); err == nil {
		t.Fatal("expected error for unknown workspace")
	}
}

func TestItemCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "mkdir", "Papers")
	if err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	folderID := extractID(t, out)

	src := filepath.Join(env.baseDir, "notes.txt")
	if err := os.WriteFile(src, []byte("remember this"), 0o644); err != nil {
		t.Fatalf("write source file: %v", err)
	}
	out, _, err = runCLI(t, env, "import", src, "--folder", folderID)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	fileID := extractID(t, out)

	out, _, err = runCLI(t, env, "cat", fileID)
	if err != nil {
		t.Fatalf("cat: %v", err)
	}
	requireContains(t, out, "remember this")

	out, _, err = runCLI(t, env, "tree")
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	requireContains(t, out, "Papers/")
	requireContains(t, out, "notes.txt")

	out, _, err = runCLI(t, env, "ls", folderID)
	if err != nil {
		t.Fatalf("ls: %v", err)
	}
	requireContains(t, out, "notes.txt")

	// Deleting the folder removes its file too.
	out, _, err = runCLI(t, env, "rm", folderID)
	if err != nil {
		t.Fatalf("rm: %v", err)
	}
	requireContains(t, out, "Deleted 2 item(s)")

	if _, _, err := runCLI(t, env, "cat", fileID); err == nil {
		t.Fatal("expected cat of deleted file to fail")
	}
}

func TestTabCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	src := filepath.Join(env.baseDir, "a.txt")
	if err := os.WriteFile(src, []byte("a"), 0o644); err != nil {
		t.Fatalf("write source file: %v", err)
	}
	out, _, err := runCLI(t, env, "import", src)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	fileID := extractID(t, out)

	if _, _, err := runCLI(t, env, "tabs", "open", fileID); err != nil {
		t.Fatalf("tabs open: %v", err)
	}

	out, _, err = runCLI(t, env, "tabs", "list")
	if err != nil {
		t.Fatalf("tabs list: %v", err)
	}
	requireContains(t, out, "a.txt")

	if _, _, err := runCLI(t, env, "tabs", "activate", "missing"); err == nil {
		t.Fatal("expected activate of unopened tab to fail")
	}

	if _, _, err := runCLI(t, env, "tabs", "close", fileID); err != nil {
		t.Fatalf("tabs close: %v", err)
	}
	out, _, err = runCLI(t, env, "tabs", "list")
	if err != nil {
		t.Fatalf("tabs list: %v", err)
	}
	if strings.Contains(out, fileID) {
		t.Fatalf("expected tab closed, got:\n%s", out)
	}
}

func TestConfigInit(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(env.baseDir, "fresh", "config.toml")
	out, _, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
	if _, _, err := runCLI(t, env, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestDoctorReportsHealthyStore(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "doctor")
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	requireContains(t, out, "[OK]")
}

// extractID pulls the trailing parenthesized or bare id out of command
// output like "Created folder Papers (uuid)" or "Imported x as uuid".
func extractID(t *testing.T, out string) string {
	t.Helper()
	line := strings.TrimSpace(out)
	if idx := strings.LastIndex(line, "("); idx >= 0 && strings.HasSuffix(line, ")") {
		return line[idx+1 : len(line)-1]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		t.Fatalf("no id in output: %q", out)
	}
	return fields[len(fields)-1]
}
