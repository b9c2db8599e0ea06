package glview

import (
	"testing"

	"github.com/taigrr/facet/internal/control"
)

func TestKeysCoverBindings(t *testing.T) {
	named := make(map[string]bool)
	for _, name := range actionKeys {
		if _, ok := control.Bindings[name]; !ok {
			t.Errorf("key %q has no binding", name)
		}
		named[name] = true
	}
	for name := range control.Bindings {
		if !named[name] {
			t.Errorf("binding %q has no GLFW key", name)
		}
	}
}

func TestKeysCoverToggles(t *testing.T) {
	named := make(map[string]bool)
	for _, name := range toggleKeys {
		if _, ok := control.ToggleKeys[name]; !ok {
			t.Errorf("key %q has no toggle", name)
		}
		named[name] = true
	}
	for name := range control.ToggleKeys {
		if !named[name] {
			t.Errorf("toggle %q has no GLFW key", name)
		}
	}
}

func TestTexCoordsFlipRows(t *testing.T) {
	// The first quad vertex is the bottom-left corner of the window and
	// must sample the last framebuffer row.
	if quadVertices[1] != -1 || texCoords[1] != 1 {
		t.Errorf("bottom-left maps to v=%v, want 1", texCoords[1])
	}
	if quadVertices[5] != 1 || texCoords[5] != 0 {
		t.Errorf("top-left maps to v=%v, want 0", texCoords[5])
	}
}
