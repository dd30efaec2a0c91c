package assets

import (
	"embed"
	"fmt"
	"path"
)

//go:embed shaders/*.glsl
var shaderFS embed.FS

// LoadShader reads an embedded GLSL file into a null-terminated string for OpenGL.
func LoadShader(name string) (string, error) {
	b, err := shaderFS.ReadFile(path.Join("shaders", name))
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	// Ensure null termination for gl.Str
	if len(b) == 0 || b[len(b)-1] != 0 {
		b = append(b, 0)
	}
	return string(b), nil
}

// LoadProgram loads the vertex and fragment sources for name, read from
// name.vert.glsl and name.frag.glsl.
func LoadProgram(name string) (vs, fs string, err error) {
	if vs, err = LoadShader(name + ".vert.glsl"); err != nil {
		return "", "", err
	}
	if fs, err = LoadShader(name + ".frag.glsl"); err != nil {
		return "", "", err
	}
	return vs, fs, nil
}
