// Package viewer flies a camera down the generated track in an OpenGL
// window. Sections are uploaded as they stream in and freed when the
// generator evicts them.
package viewer
