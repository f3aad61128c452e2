package grid_test

import (
	"errors"
	"image"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/go-theft-auto/grid"
)

func TestDrawListPool(t *testing.T) {
	dl1 := grid.AcquireDrawList()
	if dl1 == nil {
		t.Fatal("expected non-nil DrawList")
	}

	dl1.AddRect(0, 0, 100, 100, grid.ColorWhite)
	dl1.PushClipRect(0, 0, 10, 10)

	grid.ReleaseDrawList(dl1)

	// Acquire again - might get same or different list
	dl2 := grid.AcquireDrawList()
	if dl2 == nil {
		t.Fatal("expected non-nil DrawList after release")
	}

	// Should be cleared
	if len(dl2.VtxBuffer) != 0 || len(dl2.CmdBuffer) != 0 {
		t.Error("reused DrawList should be cleared")
	}
	if dl2.ClipRect() != grid.AcquireDrawList().ClipRect() {
		t.Error("reused DrawList should have no clip")
	}

	grid.ReleaseDrawList(dl2)
}

func TestDrawList_BatchesByClipAndTexture(t *testing.T) {
	dl := grid.AcquireDrawList()
	defer grid.ReleaseDrawList(dl)

	dl.AddRect(0, 0, 10, 10, grid.ColorWhite)
	dl.AddRect(10, 0, 10, 10, grid.ColorBlack)
	dl.PushClipRect(0, 0, 50, 50)
	dl.AddImage(7, 0, 0, 8, 8, grid.ColorWhite)
	dl.PopClipRect()
	dl.Finalize()

	if len(dl.VtxBuffer) != 12 || len(dl.IdxBuffer) != 18 {
		t.Fatalf("expected 12 vertices and 18 indices, got %d and %d", len(dl.VtxBuffer), len(dl.IdxBuffer))
	}
	// The trailing command opened by PopClipRect is empty and dropped.
	if len(dl.CmdBuffer) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(dl.CmdBuffer))
	}
	if dl.CmdBuffer[0].ElemCount != 12 || dl.CmdBuffer[0].TextureID != 0 {
		t.Errorf("unexpected first command %+v", dl.CmdBuffer[0])
	}
	second := dl.CmdBuffer[1]
	if second.ElemCount != 6 || second.TextureID != 7 || second.ClipRect != [4]float32{0, 0, 50, 50} {
		t.Errorf("unexpected second command %+v", second)
	}
}

func TestDrawList_SkipsTransparent(t *testing.T) {
	dl := grid.AcquireDrawList()
	defer grid.ReleaseDrawList(dl)

	dl.AddRect(0, 0, 10, 10, grid.ColorTransparent)
	dl.AddLine(0, 0, 10, 10, grid.WithAlpha(grid.ColorRed, 0), 1)
	dl.AddImage(0, 0, 0, 10, 10, grid.ColorWhite)
	if len(dl.VtxBuffer) != 0 {
		t.Errorf("expected nothing drawn, got %d vertices", len(dl.VtxBuffer))
	}
}

func TestColorFunctions(t *testing.T) {
	c := grid.RGBA(255, 128, 64, 200)
	r, g, b, a := grid.UnpackRGBA(c)
	if r != 255 || g != 128 || b != 64 || a != 200 {
		t.Errorf("RGBA roundtrip failed: got %d,%d,%d,%d", r, g, b, a)
	}

	half := grid.WithAlpha(c, 128)
	r, g, b, a = grid.UnpackRGBA(half)
	if r != 255 || g != 128 || b != 64 || a != 128 {
		t.Errorf("WithAlpha failed: got %d,%d,%d,%d", r, g, b, a)
	}
}

type stubTextures map[image.Image]uint32

func (s stubTextures) ImageTexture(img image.Image) uint32 { return s[img] }

func TestCanvas_Clip(t *testing.T) {
	dl := grid.AcquireDrawList()
	defer grid.ReleaseDrawList(dl)
	c := grid.NewCanvas(dl, tenPx, nil, nil, nil)

	c.PushClip(grid.Rect{W: 100, H: 100})
	c.PushClip(grid.Rect{X: 50, Y: 50, W: 100, H: 100})
	if got := dl.ClipRect(); got != [4]float32{50, 50, 100, 100} {
		t.Errorf("expected nested clip intersected, got %v", got)
	}
	c.PopClip()
	if got := dl.ClipRect(); got != [4]float32{0, 0, 100, 100} {
		t.Errorf("expected outer clip restored, got %v", got)
	}
	c.ResetClip()
	c.PopClip() // no-op on an empty stack
	if got := dl.ClipRect(); got == [4]float32{0, 0, 100, 100} {
		t.Error("ResetClip should drop every clip")
	}
}

func TestCanvas_DrawImage(t *testing.T) {
	dl := grid.AcquireDrawList()
	defer grid.ReleaseDrawList(dl)
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))

	c := grid.NewCanvas(dl, tenPx, nil, nil, nil)
	if err := c.DrawImage(img, grid.Rect{W: 4, H: 4}); !errors.Is(err, grid.ErrNoTexture) {
		t.Errorf("expected ErrNoTexture, got %v", err)
	}

	c = grid.NewCanvas(dl, tenPx, nil, stubTextures{img: 9}, nil)
	if err := c.DrawImage(img, grid.Rect{W: 4, H: 4}); err != nil {
		t.Fatalf("DrawImage() error: %v", err)
	}
	dl.Finalize()
	if len(dl.CmdBuffer) != 1 || dl.CmdBuffer[0].TextureID != 9 {
		t.Errorf("expected one command on texture 9, got %+v", dl.CmdBuffer)
	}
}

func TestCanvas_DrawString(t *testing.T) {
	atlas, err := grid.NewFaceAtlas(basicfont.Face7x13, grid.PrintableASCII)
	if err != nil {
		t.Fatalf("NewFaceAtlas() error: %v", err)
	}
	atlas.SetTextureID(3)

	dl := grid.AcquireDrawList()
	defer grid.ReleaseDrawList(dl)
	c := grid.NewCanvas(dl, grid.NewMonoMetrics(), atlas, nil, nil)

	f := grid.Font{Family: "mono", Size: 13}
	if err := c.DrawString("ab", f, grid.Rect{W: 100, H: 20}, grid.ColorBlack, grid.AlignFar, grid.AlignNear); err != nil {
		t.Fatalf("DrawString() error: %v", err)
	}
	if len(dl.VtxBuffer) != 8 {
		t.Fatalf("expected 2 glyph quads, got %d vertices", len(dl.VtxBuffer))
	}
	// Right aligned: 100 - 2*7.
	if x := dl.VtxBuffer[0].Pos[0]; x != 86 {
		t.Errorf("expected first glyph at x=86, got %v", x)
	}

	noFont := grid.NewCanvas(dl, grid.NewMonoMetrics(), nil, nil, nil)
	if err := noFont.DrawString("ab", f, grid.Rect{W: 100, H: 20}, grid.ColorBlack, grid.AlignNear, grid.AlignNear); !errors.Is(err, grid.ErrFontNotFound) {
		t.Errorf("expected ErrFontNotFound without fonts, got %v", err)
	}
}

func BenchmarkDrawListAddRect(b *testing.B) {
	dl := grid.AcquireDrawList()
	defer grid.ReleaseDrawList(dl)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dl.AddRect(float32(i%100), float32(i%100), 50, 50, grid.ColorWhite)
	}
}
