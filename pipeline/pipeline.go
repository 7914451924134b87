/*
DESCRIPTION
  pipeline.go wires together a FrameSource, the quantize/dither/frame
  stack, and the stream writer into the three-stage decode -> quantize
  -> frame-diff encode pipeline: one decoder goroutine, N converter
  workers, and a single writer goroutine that reassembles frames into
  strictly ascending order.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pipeline

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ausocean/cellvid/config"
	"github.com/ausocean/cellvid/diff"
	"github.com/ausocean/cellvid/frame"
	"github.com/ausocean/cellvid/palette"
	"github.com/ausocean/cellvid/stream"
)

// maxWorkers bounds the auto-selected converter worker count,
// regardless of how many hardware threads are available.
const maxWorkers = 6

// writerPollInterval is how long the writer waits between checks of
// the write queue when the next frame in sequence has not arrived yet.
// The spec permits a busy-wait; we use a short sleep so an idle
// pipeline does not spin a CPU core.
const writerPollInterval = 500 * time.Microsecond

// Pipeline runs the decode -> quantize -> frame-diff encode stages
// for one FrameSource, writing the resulting stream to an io.Writer.
type Pipeline struct {
	cfg     config.Config
	tables  *palette.Tables
	gp      palette.GamePalette
	src     FrameSource
	out     io.Writer
	workers int
}

// New returns a Pipeline reading frames from src, quantizing them
// against tables/gp, and writing the encoded stream to out.
func New(cfg config.Config, tables *palette.Tables, gp palette.GamePalette, src FrameSource, out io.Writer) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: invalid config: %w", err)
	}

	workers := int(cfg.Workers)
	if workers == 0 {
		workers = runtime.NumCPU() - 2
		if workers < 1 {
			workers = 1
		}
		if workers > maxWorkers {
			workers = maxWorkers
		}
	}

	return &Pipeline{cfg: cfg, tables: tables, gp: gp, src: src, out: out, workers: workers}, nil
}

// frameSkip returns the smallest skipFrame in [1,12] such that
// fps/skipFrame <= 12 and fps is evenly divisible by skipFrame. If no
// such value exists it falls back to 1, preserving the source frame
// rate (subject to the single-byte header's 255 ceiling).
func frameSkip(fps int) int {
	for s := 1; s <= 12; s++ {
		if fps/s <= 12 && fps%s == 0 {
			return s
		}
	}
	return 1
}

// Run drives the pipeline to completion: it blocks until the
// FrameSource is exhausted and every frame has been written, ctx is
// canceled, or a fatal error occurs in any stage. The first fatal
// error encountered is returned.
func (p *Pipeline) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := p.src.SeekFrame(0); err != nil {
		return fmt.Errorf("pipeline: could not seek source to start: %w", &SourceError{Err: err})
	}

	skip := frameSkip(p.src.FrameRate())
	outFPS := p.src.FrameRate() / skip

	w, err := stream.NewWriter(p.out, p.src.Width(), p.src.Height(), outFPS)
	if err != nil {
		return fmt.Errorf("pipeline: could not create stream writer: %w", err)
	}
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("pipeline: could not write stream header: %w", err)
	}

	convertQueueCap := int(p.cfg.ConvertQueueCap)
	if convertQueueCap == 0 {
		convertQueueCap = config.DefaultConvertQueueMul * p.workers
	}
	convertCh := make(chan ConvertJob, convertQueueCap)
	wq := &writeQueue{}

	var final atomic.Int64
	final.Store(-1)

	errCh := make(chan error, p.workers+2)
	var firstErr error
	var errOnce sync.Once
	record := func(err error) {
		if err == nil {
			return
		}
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	errDone := make(chan struct{})
	go func() {
		defer close(errDone)
		for err := range errCh {
			record(err)
			p.cfg.Logger.Error("pipeline stage error", "error", err.Error())
		}
	}()

	var decWG sync.WaitGroup
	decWG.Add(1)
	go p.runDecoder(ctx, skip, convertCh, &final, errCh, &decWG)

	var workWG sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		workWG.Add(1)
		go p.runWorker(ctx, convertCh, wq, errCh, &workWG)
	}

	closeConvert := make(chan struct{})
	go func() {
		decWG.Wait()
		close(convertCh)
		close(closeConvert)
	}()

	writeErrCh := make(chan error, 1)
	go func() {
		writeErrCh <- p.runWriter(ctx, w, wq, &final)
	}()

	<-closeConvert
	workWG.Wait()

	writeErr := <-writeErrCh
	record(writeErr)

	close(errCh)
	<-errDone

	if firstErr != nil {
		return firstErr
	}
	return nil
}

// runDecoder reads frames from the source, keeping every skip-th one,
// and pushes them as owned ConvertJobs onto convertCh. On EOF it
// records the final frame number (the count of emitted jobs plus one,
// mirroring the source's off-by-one convention) and returns.
func (p *Pipeline) runDecoder(ctx context.Context, skip int, convertCh chan<- ConvertJob, final *atomic.Int64, errCh chan<- error, wg *sync.WaitGroup) {
	defer wg.Done()

	var frameNumber uint64 = 1
	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		default:
		}

		buf, ok, err := p.src.ReadFrame()
		if err != nil {
			errCh <- fmt.Errorf("pipeline: decoder: %w", &SourceError{Err: err})
			return
		}
		if !ok {
			final.Store(int64(frameNumber))
			return
		}

		if i%skip != 0 {
			continue
		}

		owned := make([]byte, len(buf))
		copy(owned, buf)

		select {
		case convertCh <- ConvertJob{FrameNumber: frameNumber, BGRA: owned}:
		case <-ctx.Done():
			return
		}
		frameNumber++
	}
}

// runWorker pops ConvertJobs, maps them to pal8 frames, and pushes the
// results onto wq, until convertCh is closed or ctx is canceled.
func (p *Pipeline) runWorker(ctx context.Context, convertCh <-chan ConvertJob, wq *writeQueue, errCh chan<- error, wg *sync.WaitGroup) {
	defer wg.Done()

	stride := frame.Stride(p.src.Width(), int(p.cfg.Align))
	m := frame.NewMapper(p.tables, p.src.Width())

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-convertCh:
			if !ok {
				return
			}
			f := &frame.Frame{W: p.src.Width(), H: p.src.Height(), Stride: stride, Pix: job.BGRA}
			out, err := m.Convert(f)
			if err != nil {
				errCh <- fmt.Errorf("pipeline: worker: frame %d: %w", job.FrameNumber, err)
				continue
			}
			wq.Push(WriteJob{FrameNumber: job.FrameNumber, Pal8: out.Pix})
		}
	}
}

// runWriter drains wq strictly in ascending FrameNumber order,
// encoding each frame's diff records and writing them to w, until the
// final frame has been written or ctx is canceled.
func (p *Pipeline) runWriter(ctx context.Context, w *stream.Writer, wq *writeQueue, final *atomic.Int64) error {
	d := diff.NewDifferencer(p.gp)
	var framesWritten uint64

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		job, ok := wq.TryPop(framesWritten + 1)
		if !ok {
			f := final.Load()
			if f >= 0 && framesWritten == uint64(f)-1 {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(writerPollInterval):
			}
			continue
		}

		pf := &frame.Pal8Frame{W: p.src.Width(), H: p.src.Height(), Pix: job.Pal8}
		recs, err := d.Encode(pf)
		if err != nil {
			return fmt.Errorf("pipeline: writer: frame %d: %w", job.FrameNumber, err)
		}
		if err := w.WriteFrame(recs); err != nil {
			return fmt.Errorf("pipeline: writer: frame %d: %w", job.FrameNumber, err)
		}
		framesWritten++

		f := final.Load()
		if f >= 0 && framesWritten == uint64(f)-1 {
			return nil
		}
	}
}
