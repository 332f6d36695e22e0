package supervisor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveBinary locates the rmate-server helper binary, preferring well-known
// install locations before falling back to a PATH lookup. An explicit
// override (from RMATETRAY_SERVER_PATH) short-circuits discovery but must
// point at an existing file.
func ResolveBinary(override string) (string, error) {
	if override != "" {
		if info, err := os.Stat(override); err == nil && !info.IsDir() {
			return override, nil
		}
		return "", fmt.Errorf("%w: override path %s", ErrBinaryNotFound, override)
	}

	var candidates []string
	seen := make(map[string]struct{})
	addCandidate := func(path string) {
		if path == "" {
			return
		}
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		candidates = append(candidates, clean)
	}

	// 1. Paths derived from the tray executable: the bundled Resources/bin
	//    directory inside a macOS .app, and siblings for development builds.
	if execPath, err := os.Executable(); err == nil {
		if resolvedExec, err := filepath.EvalSymlinks(execPath); err == nil {
			execDir := filepath.Dir(resolvedExec)

			if runtime.GOOS == "darwin" {
				contentsDir := filepath.Dir(execDir)
				if strings.HasSuffix(contentsDir, "Contents") {
					addCandidate(filepath.Join(contentsDir, "Resources", "bin", ServerProcessName))
				}
			}

			addCandidate(filepath.Join(execDir, ServerProcessName))
			addCandidate(filepath.Join(execDir, "bin", ServerProcessName))
			addCandidate(filepath.Join(filepath.Dir(execDir), ServerProcessName))
		}
	}

	// 2. Managed installation directories.
	if homeDir, err := os.UserHomeDir(); err == nil {
		addCandidate(filepath.Join(homeDir, ".rmate-tray", "bin", ServerProcessName))
		if runtime.GOOS == "darwin" {
			addCandidate(filepath.Join(homeDir, "Library", "Application Support", "rmate-tray", "bin", ServerProcessName))
		}
	}

	// 3. Common package manager locations.
	addCandidate("/opt/homebrew/bin/" + ServerProcessName)
	addCandidate("/usr/local/bin/" + ServerProcessName)

	for _, candidate := range candidates {
		if resolved, ok := resolveExecutableCandidate(candidate); ok {
			return resolved, nil
		}
	}

	// 4. Final fallback to PATH search.
	if resolved, err := exec.LookPath(ServerProcessName); err == nil {
		return resolved, nil
	}

	return "", fmt.Errorf("%w: checked %v and PATH", ErrBinaryNotFound, candidates)
}

func resolveExecutableCandidate(path string) (string, bool) {
	abs := path
	if !filepath.IsAbs(abs) {
		var err error
		abs, err = filepath.Abs(abs)
		if err != nil {
			return "", false
		}
	}

	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return "", false
	}

	return abs, true
}
