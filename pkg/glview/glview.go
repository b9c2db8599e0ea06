// Package glview presents a render.Framebuffer in an OpenGL window.
//
// The software-rendered frame is uploaded as a texture each frame and drawn
// on a full-window quad. All functions must be called from the goroutine
// that called Open, and that goroutine must be locked to its OS thread.
package glview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/taigrr/facet/internal/control"
	"github.com/taigrr/facet/pkg/render"
)

// ErrShader reports a blit shader that failed to compile or link.
var ErrShader = errors.New("glview: shader")

const vertexSource = `
#version 460 core
layout(location = 0) in vec2 position;
layout(location = 1) in vec2 texCoord;
out vec2 uv;
void main() {
	uv = texCoord;
	gl_Position = vec4(position, 0.0, 1.0);
}` + "\x00"

const fragmentSource = `
#version 460 core
in vec2 uv;
out vec4 fragColor;
uniform sampler2D tex;
void main() {
	fragColor = texture(tex, uv);
}` + "\x00"

var quadVertices = []float32{-1, -1, 1, -1, -1, 1, 1, 1}

// Framebuffer row 0 is the top of the image, texture row 0 is the bottom.
var texCoords = []float32{0, 1, 1, 1, 0, 0, 1, 0}

// Window is an OpenGL window showing one texture.
type Window struct {
	win     *glfw.Window
	program uint32
	vao     uint32
	vbo     uint32
	tbo     uint32
	tex     uint32
	texW    int
	texH    int
	toggles control.Toggles
}

// Open initializes GLFW and creates a resizable window of the given size
// with a 4.6 core context.
func Open(title string, width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glview: init glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glview: create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("glview: init gl: %w", err)
	}

	w := &Window{win: win}
	if err := w.setup(); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

func (w *Window) setup() error {
	program, err := buildShader(vertexSource, fragmentSource)
	if err != nil {
		return err
	}
	w.program = program

	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)

	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &w.tbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.tbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(texCoords)*4, gl.Ptr(texCoords), gl.STATIC_DRAW)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(1)

	gl.GenTextures(1, &w.tex)
	gl.BindTexture(gl.TEXTURE_2D, w.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	return nil
}

func buildShader(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertex, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertex)

	fragment, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragment)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logMsg))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%w: link: %s", ErrShader, strings.TrimRight(logMsg, "\x00\n "))
	}
	return program, nil
}

func compileShader(source string, kind uint32, name string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csrc, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logMsg))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: compile %s: %s", ErrShader, name, strings.TrimRight(logMsg, "\x00\n "))
	}
	return shader, nil
}

// Upload copies fb into the window texture, reallocating it when the
// framebuffer size changes.
func (w *Window) Upload(fb *render.Framebuffer) {
	if fb.Width == 0 || fb.Height == 0 {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, w.tex)
	if fb.Width != w.texW || fb.Height != w.texH {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(fb.Width), int32(fb.Height), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(fb.Pix))
		w.texW, w.texH = fb.Width, fb.Height
		return
	}
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(fb.Width), int32(fb.Height),
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(fb.Pix))
}

// Present draws the texture over the whole window, swaps buffers and polls
// window events.
func (w *Window) Present() {
	fw, fh := w.win.GetFramebufferSize()
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(fw), int32(fh))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(w.program)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, w.tex)
	gl.BindVertexArray(w.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)

	w.win.SwapBuffers()
	glfw.PollEvents()
}

// Size returns the window's framebuffer size in pixels.
func (w *Window) Size() (width, height int) {
	return w.win.GetFramebufferSize()
}

// SetTitle replaces the window title.
func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}

// ShouldClose reports whether the window was asked to close.
func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

// Input polls the keyboard. It returns the camera actions held this frame
// and the mode toggles pressed since the last call. Escape closes the
// window.
func (w *Window) Input() (control.Action, control.Toggle) {
	if w.win.GetKey(glfw.KeyEscape) == glfw.Press {
		w.win.SetShouldClose(true)
	}

	var held control.Action
	for key, name := range actionKeys {
		if w.win.GetKey(key) == glfw.Press {
			held |= control.Bindings[name]
		}
	}

	var toggles control.Toggle
	for key, name := range toggleKeys {
		if w.win.GetKey(key) == glfw.Press {
			toggles |= control.ToggleKeys[name]
		}
	}
	return held, w.toggles.Update(toggles)
}

// Close releases GL objects, destroys the window and terminates GLFW.
func (w *Window) Close() {
	if w.tex != 0 {
		gl.DeleteTextures(1, &w.tex)
	}
	if w.vbo != 0 {
		gl.DeleteBuffers(1, &w.vbo)
	}
	if w.tbo != 0 {
		gl.DeleteBuffers(1, &w.tbo)
	}
	if w.vao != 0 {
		gl.DeleteVertexArrays(1, &w.vao)
	}
	if w.program != 0 {
		gl.DeleteProgram(w.program)
	}
	w.win.Destroy()
	glfw.Terminate()
}
