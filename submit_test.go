package imdraw

import (
	"errors"
	"testing"
)

type capturedBatch struct {
	snap *Snapshot
	cmd  Command
}

// captureSubmitter records submitted batches, or fails every call when err
// is set.
type captureSubmitter struct {
	batches []capturedBatch
	err     error
}

func (c *captureSubmitter) SubmitBatch(snap *Snapshot, cmd Command) error {
	if c.err != nil {
		return c.err
	}
	c.batches = append(c.batches, capturedBatch{snap: snap, cmd: cmd})
	return nil
}

// TestSnapshot tests the type-erased view: layout pointers, raw byte
// lengths, and aliasing of the index and command slices.
func TestSnapshot(t *testing.T) {
	buf := NewBuffer[ColorVertex, ColorUniform]()
	stampUnitQuad(buf)

	snap := buf.Snapshot()
	if snap.Vertex != colorVertexLayout {
		t.Errorf("Vertex = %p, want colorVertexLayout %p", snap.Vertex, colorVertexLayout)
	}
	if snap.Uniform != colorUniformLayout {
		t.Errorf("Uniform = %p, want colorUniformLayout %p", snap.Uniform, colorUniformLayout)
	}
	if snap.VertexCount != 4 {
		t.Errorf("VertexCount = %d, want 4", snap.VertexCount)
	}
	if got, want := len(snap.VertexData), 4*int(colorVertexLayout.Size); got != want {
		t.Errorf("len(VertexData) = %d, want %d", got, want)
	}
	if snap.UniformCount != 1 {
		t.Errorf("UniformCount = %d, want 1", snap.UniformCount)
	}
	if got, want := len(snap.UniformData), int(colorUniformLayout.Size); got != want {
		t.Errorf("len(UniformData) = %d, want %d", got, want)
	}
	if len(snap.Indices) != 6 {
		t.Errorf("len(Indices) = %d, want 6", len(snap.Indices))
	}
	if len(snap.Commands) != 1 {
		t.Errorf("len(Commands) = %d, want 1", len(snap.Commands))
	}

	// Vertex 0 is position (0, 0) with white colors: eight zero bytes of
	// position, then eight 0xFF color bytes.
	for i := range 8 {
		if snap.VertexData[i] != 0 {
			t.Errorf("VertexData[%d] = %#x, want 0", i, snap.VertexData[i])
		}
		if snap.VertexData[8+i] != 0xFF {
			t.Errorf("VertexData[%d] = %#x, want 0xff", 8+i, snap.VertexData[8+i])
		}
	}
}

// TestSnapshotEmpty tests that an empty buffer snapshots to nil data.
func TestSnapshotEmpty(t *testing.T) {
	buf := NewBuffer[ColorVertex, ColorUniform]()
	snap := buf.Snapshot()

	if snap.VertexData != nil {
		t.Errorf("VertexData = %v, want nil", snap.VertexData)
	}
	if snap.UniformData != nil {
		t.Errorf("UniformData = %v, want nil", snap.UniformData)
	}
	if snap.VertexCount != 0 || snap.UniformCount != 0 {
		t.Errorf("counts = %d, %d, want 0, 0", snap.VertexCount, snap.UniformCount)
	}
	if len(snap.Commands) != 0 {
		t.Errorf("len(Commands) = %d, want 0", len(snap.Commands))
	}
}

// TestDraw tests that Draw submits every command in order against one
// snapshot.
func TestDraw(t *testing.T) {
	buf := NewBuffer[ColorVertex, ColorUniform]()
	stampUnitQuad(buf)
	buf.Blend = BlendAlpha
	stampUnitQuad(buf)

	sub := &captureSubmitter{}
	if err := buf.Draw(sub); err != nil {
		t.Fatalf("Draw() = %v, want nil", err)
	}
	if len(sub.batches) != 2 {
		t.Fatalf("submitted %d batches, want 2", len(sub.batches))
	}
	if sub.batches[0].snap != sub.batches[1].snap {
		t.Error("batches reference different snapshots, want one per Draw")
	}
	if got := sub.batches[0].cmd.IndexEnd; got != 6 {
		t.Errorf("first command IndexEnd = %d, want 6", got)
	}
	if got := sub.batches[1].cmd; got.IndexStart != 6 || got.IndexEnd != 12 {
		t.Errorf("second command range = [%d, %d), want [6, 12)", got.IndexStart, got.IndexEnd)
	}
	if got := sub.batches[1].cmd.State.Blend; got != BlendAlpha {
		t.Errorf("second command blend = %v, want BlendAlpha", got)
	}
}

// TestDrawNilSubmitter tests the nil-submitter guard.
func TestDrawNilSubmitter(t *testing.T) {
	buf := NewBuffer[ColorVertex, ColorUniform]()
	if err := buf.Draw(nil); !errors.Is(err, ErrNilSubmitter) {
		t.Errorf("Draw(nil) = %v, want ErrNilSubmitter", err)
	}
}

// TestDrawPropagatesError tests that the first submitter error aborts the
// replay.
func TestDrawPropagatesError(t *testing.T) {
	buf := NewBuffer[ColorVertex, ColorUniform]()
	stampUnitQuad(buf)

	errBoom := errors.New("boom")
	sub := &captureSubmitter{err: errBoom}
	if err := buf.Draw(sub); !errors.Is(err, errBoom) {
		t.Errorf("Draw() = %v, want %v", err, errBoom)
	}
	if len(sub.batches) != 0 {
		t.Errorf("submitted %d batches after error, want 0", len(sub.batches))
	}
}
