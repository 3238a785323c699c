// Package render turns loop state into drawing calls on a [Surface].
//
// A Surface is whatever the host can draw on: a raylib window, an Ebitengine
// screen, a braille terminal canvas or a browser canvas. World layers (the
// ambient glow, the trail, the arms and the nodes) are always blended
// additively; the HUD is drawn with normal blending on top.
//
// Layer order within a frame is fixed:
//
//	ambient glow → trail → arm halos → arm cores → nodes → HUD
package render
