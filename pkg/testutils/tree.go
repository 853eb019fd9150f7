// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package testutils builds fixture trees for tests.
package testutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// TemplatePackageDir is where TemplateTree puts the package.
const TemplatePackageDir = "Packages/nickmaltbie.TemplateUnityPackage"

// TemplateTree is a small project generated from the package template.
// Keys are slash separated paths relative to the project root.
func TemplateTree() map[string]string {
	pkg := TemplatePackageDir
	return map[string]string{
		pkg + "/package.json":                                    `{"name": "com.nickmaltbie.templateunitypackage", "displayName": "Template Unity Package"}`,
		pkg + "/Runtime/Example.cs":                              "namespace nickmaltbie.TemplateUnityPackage {}",
		pkg + "/Runtime/nickmaltbie.TemplateUnityPackage.asmdef": `{"name": "nickmaltbie.TemplateUnityPackage"}`,

		"Assets/foo.cs":            `// "nickmaltbie" "Template Unity Package"`,
		"Assets/logo.png":          "nickmaltbie",
		".git/notes.md":            "nickmaltbie",
		".github/workflows/ci.yml": "name: nickmaltbie ci",
		"README.md":                "# Template Unity Package by nickmaltbie",
	}
}

// WriteTree creates every file under root, making parent directories.
func WriteTree(t testing.TB, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "creating parent of %s", rel)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "writing %s", rel)
	}
}

// ReadFile returns the content of a slash separated path under root.
func ReadFile(t testing.TB, root, rel string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err, "reading %s", rel)
	return string(content)
}

// Context returns a context whose logger writes to the test log.
func Context(t testing.TB) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}
