package render

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const quadVertexShader = `
	#version 410 core
	layout (location = 0) in vec4 vertex; // <vec2 pos, vec2 tex>
	void main() {
		gl_Position = vec4(vertex.xy, 0.0, 1.0);
	}
` + "\x00"

const quadFragmentShader = `
	#version 410 core
	out vec4 FragColor;
	uniform vec4 color;
	void main() {
		FragColor = color;
	}
` + "\x00"

const borderVertexShader = `
	#version 410 core
	layout (location = 0) in vec4 corner;
	layout (location = 1) in float packed;
	out vec3 borderColor;
	void main() {
		uint c = uint(packed);
		borderColor = vec3((c >> 16) & 0xffu, (c >> 8) & 0xffu, c & 0xffu) / 255.0;
		gl_Position = vec4(corner.xy, 0.0, 1.0);
	}
` + "\x00"

const borderFragmentShader = `
	#version 410 core
	in vec3 borderColor;
	out vec4 FragColor;
	void main() {
		FragColor = vec4(borderColor, 1.0);
	}
` + "\x00"

type (
	ivGetter  func(obj, pname uint32, params *int32)
	logGetter func(obj uint32, size int32, length *int32, log *uint8)
)

// infoLog checks a shader or program status and returns its info log when
// the check failed
func infoLog(obj, status uint32, iv ivGetter, get logGetter) (string, bool) {
	var ok int32
	iv(obj, status, &ok)
	if ok != gl.FALSE {
		return "", true
	}
	var n int32
	iv(obj, gl.INFO_LOG_LENGTH, &n)
	buf := strings.Repeat("\x00", int(n+1))
	get(obj, n, nil, gl.Str(buf))
	return strings.TrimRight(buf, "\x00"), false
}

// createProgram links a vertex and a fragment shader into a program
func createProgram(vertexSource, fragmentSource string) (uint32, error) {
	vs, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if msg, ok := infoLog(program, gl.LINK_STATUS, gl.GetProgramiv, gl.GetProgramInfoLog); !ok {
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %s", msg)
	}
	return program, nil
}

func compileShader(source string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	src, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, src, nil)
	free()
	gl.CompileShader(shader)

	if msg, ok := infoLog(shader, gl.COMPILE_STATUS, gl.GetShaderiv, gl.GetShaderInfoLog); !ok {
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %s", msg)
	}
	return shader, nil
}
