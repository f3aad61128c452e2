package grid

import (
	"math"
	"sync"
)

// drawListPool recycles DrawList buffers between paint passes.
var drawListPool = sync.Pool{
	New: func() any {
		return &DrawList{
			VtxBuffer: make([]Vertex, 0, 4096),
			IdxBuffer: make([]uint16, 0, 8192),
			CmdBuffer: make([]DrawCmd, 0, 64),
			clipStack: make([][4]float32, 0, 8),
		}
	},
}

// AcquireDrawList gets a cleared DrawList from the pool.
// Call ReleaseDrawList when done to return it.
func AcquireDrawList() *DrawList {
	dl := drawListPool.Get().(*DrawList)
	dl.Clear()
	return dl
}

// ReleaseDrawList returns a DrawList to the pool for reuse.
func ReleaseDrawList(dl *DrawList) {
	if dl != nil {
		drawListPool.Put(dl)
	}
}

// noClip is the clip rectangle used when nothing is pushed.
var noClip = [4]float32{-1e9, -1e9, 1e9, 1e9}

// DrawList accumulates triangles for one paint pass, batched by texture
// and clip rectangle.
type DrawList struct {
	CmdBuffer []DrawCmd // Draw commands
	VtxBuffer []Vertex  // Vertex data
	IdxBuffer []uint16  // Index data

	clipStack    [][4]float32
	currentClip  [4]float32
	textureID    uint32
	cmdOffset    uint32 // Vertex offset for current command
	idxCmdOffset uint32 // Index offset for current command
}

// Clear resets the DrawList, keeping allocated capacity.
func (dl *DrawList) Clear() {
	dl.CmdBuffer = dl.CmdBuffer[:0]
	dl.VtxBuffer = dl.VtxBuffer[:0]
	dl.IdxBuffer = dl.IdxBuffer[:0]
	dl.clipStack = dl.clipStack[:0]
	dl.currentClip = noClip
	dl.textureID = 0
	dl.cmdOffset = 0
	dl.idxCmdOffset = 0
}

// PushClipRect pushes a new clip rectangle onto the stack.
func (dl *DrawList) PushClipRect(x1, y1, x2, y2 float32) {
	dl.clipStack = append(dl.clipStack, dl.currentClip)
	dl.currentClip = [4]float32{x1, y1, x2, y2}
	dl.splitDraw()
}

// PopClipRect pops the clip rectangle stack.
func (dl *DrawList) PopClipRect() {
	n := len(dl.clipStack)
	if n > 0 {
		dl.currentClip = dl.clipStack[n-1]
		dl.clipStack = dl.clipStack[:n-1]
		dl.splitDraw()
	}
}

// ResetClipRect drops every pushed clip rectangle.
func (dl *DrawList) ResetClipRect() {
	if len(dl.clipStack) == 0 && dl.currentClip == noClip {
		return
	}
	dl.clipStack = dl.clipStack[:0]
	dl.currentClip = noClip
	dl.splitDraw()
}

// ClipRect returns the active clip rectangle as x1, y1, x2, y2.
func (dl *DrawList) ClipRect() [4]float32 {
	return dl.currentClip
}

// SetTexture sets the current texture for subsequent primitives.
func (dl *DrawList) SetTexture(textureID uint32) {
	if dl.textureID != textureID {
		dl.textureID = textureID
		dl.splitDraw()
	}
}

// splitDraw finalizes the current command and starts a new one.
func (dl *DrawList) splitDraw() {
	if len(dl.CmdBuffer) > 0 {
		lastCmd := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
		lastCmd.ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxCmdOffset
	}
	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{
		ClipRect:     dl.currentClip,
		TextureID:    dl.textureID,
		VertexOffset: uint32(len(dl.VtxBuffer)),
		IndexOffset:  uint32(len(dl.IdxBuffer)),
	})
	dl.cmdOffset = uint32(len(dl.VtxBuffer))
	dl.idxCmdOffset = uint32(len(dl.IdxBuffer))
}

func (dl *DrawList) ensureCommand() {
	if len(dl.CmdBuffer) == 0 {
		dl.splitDraw()
	}
}

// addVertices adds vertices and returns the starting index relative to the
// current command. Commands are split before the 16-bit index space runs out.
func (dl *DrawList) addVertices(verts ...Vertex) uint16 {
	dl.ensureCommand()
	if len(dl.VtxBuffer)-int(dl.cmdOffset)+len(verts) > math.MaxUint16 {
		dl.splitDraw()
	}
	startIdx := uint16(len(dl.VtxBuffer) - int(dl.cmdOffset))
	dl.VtxBuffer = append(dl.VtxBuffer, verts...)
	return startIdx
}

func (dl *DrawList) addIndices(indices ...uint16) {
	dl.IdxBuffer = append(dl.IdxBuffer, indices...)
}

func (dl *DrawList) addQuad(v0, v1, v2, v3 Vertex) {
	idx := dl.addVertices(v0, v1, v2, v3)
	dl.addIndices(idx, idx+1, idx+2, idx, idx+2, idx+3)
}

// AddRect draws a filled rectangle.
func (dl *DrawList) AddRect(x, y, w, h float32, color uint32) {
	if color&0xFF000000 == 0 {
		return
	}
	dl.SetTexture(0)
	dl.addQuad(
		Vertex{Pos: [2]float32{x, y}, Color: color},
		Vertex{Pos: [2]float32{x + w, y}, Color: color},
		Vertex{Pos: [2]float32{x + w, y + h}, Color: color},
		Vertex{Pos: [2]float32{x, y + h}, Color: color},
	)
}

// AddRectGradientV draws a rectangle whose color blends from top to bottom.
func (dl *DrawList) AddRectGradientV(x, y, w, h float32, top, bottom uint32) {
	if top&0xFF000000 == 0 && bottom&0xFF000000 == 0 {
		return
	}
	dl.SetTexture(0)
	dl.addQuad(
		Vertex{Pos: [2]float32{x, y}, Color: top},
		Vertex{Pos: [2]float32{x + w, y}, Color: top},
		Vertex{Pos: [2]float32{x + w, y + h}, Color: bottom},
		Vertex{Pos: [2]float32{x, y + h}, Color: bottom},
	)
}

// AddRectOutline draws a rectangle outline.
func (dl *DrawList) AddRectOutline(x, y, w, h float32, color uint32, thickness float32) {
	if color&0xFF000000 == 0 {
		return
	}
	dl.AddRect(x, y, w, thickness, color)
	dl.AddRect(x, y+h-thickness, w, thickness, color)
	dl.AddRect(x, y+thickness, thickness, h-2*thickness, color)
	dl.AddRect(x+w-thickness, y+thickness, thickness, h-2*thickness, color)
}

// AddLine draws a line between two points as a quad of the given thickness.
func (dl *DrawList) AddLine(x1, y1, x2, y2 float32, color uint32, thickness float32) {
	if color&0xFF000000 == 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	inv := float32(1.0)
	if dx != 0 || dy != 0 {
		inv = 1.0 / float32(math.Sqrt(float64(dx*dx+dy*dy)))
	}
	nx := -dy * inv * thickness * 0.5
	ny := dx * inv * thickness * 0.5

	dl.SetTexture(0)
	dl.addQuad(
		Vertex{Pos: [2]float32{x1 + nx, y1 + ny}, Color: color},
		Vertex{Pos: [2]float32{x2 + nx, y2 + ny}, Color: color},
		Vertex{Pos: [2]float32{x2 - nx, y2 - ny}, Color: color},
		Vertex{Pos: [2]float32{x1 - nx, y1 - ny}, Color: color},
	)
}

// AddCircleFilled draws a filled circle as a triangle fan.
func (dl *DrawList) AddCircleFilled(cx, cy, radius float32, color uint32, segments int) {
	if color&0xFF000000 == 0 || radius <= 0 {
		return
	}
	if segments < 3 {
		segments = 3
	}
	dl.SetTexture(0)
	verts := make([]Vertex, 0, segments+2)
	verts = append(verts, Vertex{Pos: [2]float32{cx, cy}, Color: color})
	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		verts = append(verts, Vertex{Pos: [2]float32{
			cx + radius*float32(math.Cos(a)),
			cy + radius*float32(math.Sin(a)),
		}, Color: color})
	}
	center := dl.addVertices(verts...)
	for i := 1; i <= segments; i++ {
		dl.addIndices(center, center+uint16(i), center+uint16(i+1))
	}
}

// AddTriangle draws a filled triangle.
func (dl *DrawList) AddTriangle(x1, y1, x2, y2, x3, y3 float32, color uint32) {
	if color&0xFF000000 == 0 {
		return
	}
	dl.SetTexture(0)
	idx := dl.addVertices(
		Vertex{Pos: [2]float32{x1, y1}, Color: color},
		Vertex{Pos: [2]float32{x2, y2}, Color: color},
		Vertex{Pos: [2]float32{x3, y3}, Color: color},
	)
	dl.addIndices(idx, idx+1, idx+2)
}

// AddImage draws a textured quad covering the whole texture.
func (dl *DrawList) AddImage(textureID uint32, x, y, w, h float32, tint uint32) {
	if textureID == 0 || tint&0xFF000000 == 0 {
		return
	}
	dl.SetTexture(textureID)
	dl.addQuad(
		Vertex{Pos: [2]float32{x, y}, TexCoord: [2]float32{0, 0}, Color: tint},
		Vertex{Pos: [2]float32{x + w, y}, TexCoord: [2]float32{1, 0}, Color: tint},
		Vertex{Pos: [2]float32{x + w, y + h}, TexCoord: [2]float32{1, 1}, Color: tint},
		Vertex{Pos: [2]float32{x, y + h}, TexCoord: [2]float32{0, 1}, Color: tint},
	)
}

// AddGlyphQuads draws quads produced by a GlyphFont.
func (dl *DrawList) AddGlyphQuads(texture uint32, quads []GlyphQuad, color uint32) {
	if color&0xFF000000 == 0 || len(quads) == 0 {
		return
	}
	dl.SetTexture(texture)
	for _, q := range quads {
		dl.addQuad(
			Vertex{Pos: [2]float32{q.X0, q.Y0}, TexCoord: [2]float32{q.U0, q.V0}, Color: color},
			Vertex{Pos: [2]float32{q.X1, q.Y0}, TexCoord: [2]float32{q.U1, q.V0}, Color: color},
			Vertex{Pos: [2]float32{q.X1, q.Y1}, TexCoord: [2]float32{q.U1, q.V1}, Color: color},
			Vertex{Pos: [2]float32{q.X0, q.Y1}, TexCoord: [2]float32{q.U0, q.V1}, Color: color},
		)
	}
}

// Finalize closes the last command and drops empty ones.
// Must be called after all primitives are added.
func (dl *DrawList) Finalize() {
	if len(dl.CmdBuffer) > 0 {
		lastCmd := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
		lastCmd.ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxCmdOffset
	}
	filtered := dl.CmdBuffer[:0]
	for _, cmd := range dl.CmdBuffer {
		if cmd.ElemCount > 0 {
			filtered = append(filtered, cmd)
		}
	}
	dl.CmdBuffer = filtered
}
