package gridmem

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gridmem/testutil"
)

func newTestGrid(t *testing.T, rows, cols, elemSize int, optFns ...Option) *Grid {
	t.Helper()

	optFns = append([]Option{WithLogger(NoopLogger())}, optFns...)
	g, err := Alloc(rows, cols, elemSize, optFns...)
	require.NoError(t, err)
	t.Cleanup(g.Free)

	return g
}

func TestSizeEstimate(t *testing.T) {
	assert.Equal(t, 3*ptrSize+48, SizeEstimate(3, 4, 4))
	assert.Equal(t, uint64(0), SizeEstimate(0, 4, 4))
	assert.Equal(t, 2*ptrSize, SizeEstimate(2, 0, 8))
}

func TestAllocZeroInitialized(t *testing.T) {
	g := newTestGrid(t, 3, 4, 4)

	assert.Equal(t, uint64(48), g.Size())
	for i, b := range g.Bytes() {
		assert.Zero(t, b, "byte %d should be zero", i)
	}
}

func TestAllocZeroRows(t *testing.T) {
	g := newTestGrid(t, 0, 4, 4)

	assert.Equal(t, 0, g.Rows())
	assert.Equal(t, 4, g.Cols())
	assert.Equal(t, uint64(0), g.Size())
	assert.Nil(t, g.Bytes())
}

func TestAllocInvalidShape(t *testing.T) {
	_, err := Alloc(-1, 4, 4, WithLogger(NoopLogger()))
	assert.ErrorIs(t, err, ErrOutOfMemory)
}

func TestRowContiguity(t *testing.T) {
	g := newTestGrid(t, 3, 4, 4)

	base := uintptr(unsafe.Pointer(&g.Row(0)[0]))
	for i := 0; i < g.Rows(); i++ {
		addr := uintptr(unsafe.Pointer(&g.Row(i)[0]))
		assert.Equal(t, base+uintptr(i*16), addr, "row %d should start %d bytes after row 0", i, i*16)
	}

	// The concrete case: row 2 starts 32 bytes after row 0.
	assert.Equal(t, base+32, uintptr(unsafe.Pointer(&g.Row(2)[0])))
}

func TestRowOutOfRange(t *testing.T) {
	g := newTestGrid(t, 3, 4, 4)

	assert.Panics(t, func() { g.Row(-1) })
	assert.Panics(t, func() { g.Row(3) })
}

func TestFill(t *testing.T) {
	g := newTestGrid(t, 3, 4, 4)

	g.Fill(0xFF)

	require.Equal(t, uint64(48), g.Size())
	for i, b := range g.Bytes() {
		assert.Equal(t, byte(0xFF), b, "byte %d", i)
	}
}

func TestResizeGrowPreservesAndZeroFills(t *testing.T) {
	rng := testutil.NewRNG(42)

	g := newTestGrid(t, 3, 4, 4)
	rng.FillBytes(g.Bytes())
	want := append([]byte(nil), g.Bytes()...)

	require.NoError(t, g.Resize(5, 4, 4))

	assert.Equal(t, 5, g.Rows())
	assert.Equal(t, uint64(80), g.Size())
	assert.Equal(t, want, g.Bytes()[:48], "surviving rows must be preserved")
	for i := 48; i < 80; i++ {
		assert.Zero(t, g.Bytes()[i], "added byte %d must be zero-filled", i)
	}
}

func TestResizeShrink(t *testing.T) {
	rng := testutil.NewRNG(7)

	g := newTestGrid(t, 5, 4, 4)
	rng.FillBytes(g.Bytes())
	want := append([]byte(nil), g.Bytes()[:32]...)

	require.NoError(t, g.Resize(2, 4, 4))

	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, want, g.Bytes())
}

func TestResizeZeroRows(t *testing.T) {
	g := newTestGrid(t, 3, 4, 4)

	err := g.Resize(0, 4, 4)
	assert.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, 3, g.Rows(), "grid must be unchanged after failed resize")
}

// TestResizeReshapeTerminates asserts the documented fatal path: changing
// cols or elemSize terminates the process. The fatal case runs in a child
// process so the test binary survives.
func TestResizeReshapeTerminates(t *testing.T) {
	if os.Getenv("GRIDMEM_CRASH_RESHAPE") == "1" {
		g, err := Alloc(2, 2, 4, WithLogger(NoopLogger()))
		if err != nil {
			t.Fatal(err)
		}
		_ = g.Resize(2, 3, 4) // must not return
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestResizeReshapeTerminates$") //nolint:gosec // re-runs this test binary
	cmd.Env = append(os.Environ(), "GRIDMEM_CRASH_RESHAPE=1")

	err := cmd.Run()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr, "child must terminate abnormally")
	assert.False(t, exitErr.Success())
}

func TestCopyFrom(t *testing.T) {
	rng := testutil.NewRNG(1)

	src := newTestGrid(t, 3, 4, 4)
	rng.FillBytes(src.Bytes())
	want := append([]byte(nil), src.Bytes()...)

	dst := newTestGrid(t, 3, 4, 4)
	require.NoError(t, dst.CopyFrom(src))

	assert.Equal(t, want, dst.Bytes())
	assert.Equal(t, want, src.Bytes(), "source must be unmodified")
}

func TestCopyFromShapeMismatch(t *testing.T) {
	rng := testutil.NewRNG(2)

	src := newTestGrid(t, 2, 4, 4)
	rng.FillBytes(src.Bytes())

	dst := newTestGrid(t, 3, 4, 4)
	err := dst.CopyFrom(src)

	require.ErrorIs(t, err, ErrShapeMismatch)

	var shapeErr *ErrGridShape
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, Shape{Rows: 3, Cols: 4, ElemSize: 4}, shapeErr.Dst)
	assert.Equal(t, Shape{Rows: 2, Cols: 4, ElemSize: 4}, shapeErr.Src)

	// The copy proceeded anyway, bounded by the destination's size.
	assert.Equal(t, src.Bytes(), dst.Bytes()[:32])
}

type fakeAcquirer struct {
	used   int64
	denied bool
}

func (f *fakeAcquirer) AcquireMemory(amount int64) error {
	if f.denied {
		return errors.New("budget denied")
	}
	f.used += amount
	return nil
}

func (f *fakeAcquirer) ReleaseMemory(amount int64) {
	f.used -= amount
}

func TestBudgetAccounting(t *testing.T) {
	fa := &fakeAcquirer{}

	g, err := Alloc(3, 4, 4, WithLogger(NoopLogger()), WithMemoryAcquirer(fa))
	require.NoError(t, err)
	assert.Equal(t, int64(48), fa.used)

	require.NoError(t, g.Resize(5, 4, 4))
	assert.Equal(t, int64(80), fa.used)

	require.NoError(t, g.Resize(2, 4, 4))
	assert.Equal(t, int64(32), fa.used)

	g.Free()
	assert.Equal(t, int64(0), fa.used)
}

func TestBudgetDenied(t *testing.T) {
	fa := &fakeAcquirer{denied: true}

	_, err := Alloc(3, 4, 4, WithLogger(NoopLogger()), WithMemoryAcquirer(fa))
	assert.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, int64(0), fa.used)
}

func TestMetrics(t *testing.T) {
	mc := &BasicMetricsCollector{}

	g, err := Alloc(3, 4, 4, WithLogger(NoopLogger()), WithMetricsCollector(mc))
	require.NoError(t, err)
	require.NoError(t, g.Resize(5, 4, 4))

	other := newTestGrid(t, 5, 4, 4)
	require.NoError(t, g.CopyFrom(other))
	g.Free()

	assert.Equal(t, int64(1), mc.AllocCount.Load())
	assert.Equal(t, int64(48), mc.AllocBytes.Load())
	assert.Equal(t, int64(1), mc.ResizeCount.Load())
	assert.Equal(t, int64(1), mc.CopyCount.Load())
	assert.Equal(t, int64(1), mc.FreeCount.Load())
	assert.Equal(t, int64(80), mc.FreedBytes.Load())
	assert.Equal(t, int64(0), mc.AllocErrors.Load())
}

func TestString(t *testing.T) {
	g := newTestGrid(t, 3, 4, 4)
	assert.Equal(t, "Grid{shape: 3x4x4, bytes: 48}", g.String())
}

func BenchmarkAlloc(b *testing.B) {
	shapes := []Shape{
		{Rows: 16, Cols: 16, ElemSize: 4},
		{Rows: 256, Cols: 64, ElemSize: 8},
		{Rows: 1024, Cols: 1024, ElemSize: 4},
	}

	for _, s := range shapes {
		b.Run(fmt.Sprintf("shape=%s", s), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				g, err := Alloc(s.Rows, s.Cols, s.ElemSize, WithLogger(NoopLogger()))
				if err != nil {
					b.Fatal(err)
				}
				g.Free()
			}
		})
	}
}

func BenchmarkFill(b *testing.B) {
	g, err := Alloc(1024, 1024, 4, WithLogger(NoopLogger()))
	if err != nil {
		b.Fatal(err)
	}
	defer g.Free()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Fill(byte(i))
	}
}
