// Package track procedurally generates an endless ribbon track: a path of
// varying heading and width, obstacle blocks placed under a difficulty
// budget, collectibles checked clear of those blocks, and the triangle
// meshes for all of it. Sections are streamed through a fixed-size window
// driven by checkpoint and trigger planes.
//
// Everything is derived from one seeded random stream, so a seed and a
// sequence of challenge values always reproduce the same track.
package track
