package glview

import "github.com/go-gl/glfw/v3.3/glfw"

// actionKeys names the GLFW keys bound in control.Bindings.
var actionKeys = map[glfw.Key]string{
	glfw.KeyW:     "w",
	glfw.KeyS:     "s",
	glfw.KeyA:     "a",
	glfw.KeyD:     "d",
	glfw.KeyQ:     "q",
	glfw.KeyE:     "e",
	glfw.KeyLeft:  "left",
	glfw.KeyRight: "right",
	glfw.KeyUp:    "up",
	glfw.KeyDown:  "down",
}

// toggleKeys names the GLFW keys bound in control.ToggleKeys.
var toggleKeys = map[glfw.Key]string{
	glfw.KeyF1: "f1",
	glfw.KeyF2: "f2",
	glfw.KeyF3: "f3",
	glfw.KeyF4: "f4",
}
