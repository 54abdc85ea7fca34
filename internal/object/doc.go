// Package object contains the game's sprites: the player's ship, its bullets,
// the falling asteroids built from near-Earth object data, and explosion
// particles.
//
// Positions and sizes are in logical field units (the field is 800x600) and
// speeds in units per second; the canvas scales them to the terminal.
package object
