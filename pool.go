package imdraw

import (
	"fmt"
	"sync"
)

// typeKey identifies a buffer type by its registered layout pair.
type typeKey struct {
	vertex  uint32
	uniform uint32
}

// poolBuffer is the type-erased face a Buffer shows the pool.
type poolBuffer interface {
	Clear()
	CommandCount() int
	Snapshot() *Snapshot
	shared() sharedState
	setShared(sharedState)
	disarmMerge()
}

func (b *Buffer[V, U]) shared() sharedState {
	return sharedState{scissor: b.Scissor, blend: b.Blend, depth: b.Depth, cull: b.Cull}
}

func (b *Buffer[V, U]) setShared(s sharedState) {
	b.Scissor = s.scissor
	b.Blend = s.blend
	b.Depth = s.depth
	b.Cull = s.cull
}

func (b *Buffer[V, U]) disarmMerge() { b.merging = false }

// drawSub is one contiguous run of commands drawn from a single buffer.
type drawSub struct {
	key        typeKey
	buf        poolBuffer
	start, end int
}

// Pool manages buffers of heterogeneous vertex/uniform types, recycling
// them across frames and remembering the order in which callers switched
// between types so Flush can replay the whole frame in submission order.
//
// Shared render state (scissor, blend, depth, cull) carries over when
// switching between buffer types; shaders and uniforms do not and must be
// set explicitly on the returned buffer.
//
// Pool methods are safe for concurrent use, but each returned buffer still
// has a single writer at a time.
type Pool struct {
	mu   sync.Mutex
	pool map[typeKey]poolBuffer
	subs []drawSub
	opts []Option
}

// NewPool creates an empty pool. The options apply to every buffer the
// pool creates.
func NewPool(opts ...Option) *Pool {
	return &Pool{pool: make(map[typeKey]poolBuffer), opts: opts}
}

// PoolGet returns the pool's buffer for the given vertex/uniform type pair,
// creating it on first use.
//
// When the most recent PoolGet used the same pair, the same buffer is
// returned and its running submission continues. Otherwise the previous
// submission is closed, its scissor/blend/depth/cull state carries over to
// the returned buffer, and merging with the buffer's earlier commands is
// disarmed.
func PoolGet[V Vertex, U Uniform](p *Pool) *Buffer[V, U] {
	var v V
	var u U
	key := typeKey{vertex: v.VertexLayout().ID, uniform: u.UniformLayout().ID}

	p.mu.Lock()
	defer p.mu.Unlock()

	var carry sharedState
	carryOver := false
	if n := len(p.subs); n > 0 {
		last := &p.subs[n-1]
		if last.key == key {
			return poolCast[V, U](last.buf, key)
		}
		// Close the running submission and take its render state along.
		last.end = last.buf.CommandCount()
		carry = last.buf.shared()
		carryOver = true
	}

	pb, ok := p.pool[key]
	if !ok {
		pb = NewBuffer[V, U](p.opts...)
		p.pool[key] = pb
	}
	buf := poolCast[V, U](pb, key)

	// The buffer may already hold commands from an earlier submission;
	// never merge across the switch.
	buf.disarmMerge()

	if carryOver {
		buf.setShared(carry)
	}

	cmds := buf.CommandCount()
	p.subs = append(p.subs, drawSub{key: key, buf: pb, start: cmds, end: cmds})
	return buf
}

func poolCast[V Vertex, U Uniform](pb poolBuffer, key typeKey) *Buffer[V, U] {
	buf, ok := pb.(*Buffer[V, U])
	if !ok {
		panic(fmt.Sprintf("imdraw: pool key collision: layouts %#x/%#x are shared by more than one buffer type", key.vertex, key.uniform))
	}
	return buf
}

// Clear resets every pooled buffer for reuse and forgets the submission
// order.
func (p *Pool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, pb := range p.pool {
		pb.Clear()
	}
	p.subs = p.subs[:0]
}

// Flush submits all commands in the order they were issued across buffer
// switches. Each buffer is snapshotted once, no matter how many submission
// runs reference it.
func (p *Pool) Flush(s Submitter) error {
	if s == nil {
		return ErrNilSubmitter
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if n := len(p.subs); n > 0 {
		last := &p.subs[n-1]
		last.end = last.buf.CommandCount()
	}

	snaps := make(map[typeKey]*Snapshot, len(p.pool))
	for _, sub := range p.subs {
		snap, ok := snaps[sub.key]
		if !ok {
			snap = sub.buf.Snapshot()
			snaps[sub.key] = snap
		}
		for _, cmd := range snap.Commands[sub.start:sub.end] {
			if err := s.SubmitBatch(snap, cmd); err != nil {
				return err
			}
		}
	}
	return nil
}

// FlushUnordered submits each buffer's commands in one contiguous run,
// without preserving issue order across buffer types. Cheaper than Flush
// when depth testing orders fragments and blending does not matter.
func (p *Pool) FlushUnordered(s Submitter) error {
	if s == nil {
		return ErrNilSubmitter
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, pb := range p.pool {
		snap := pb.Snapshot()
		for _, cmd := range snap.Commands {
			if err := s.SubmitBatch(snap, cmd); err != nil {
				return err
			}
		}
	}
	return nil
}
